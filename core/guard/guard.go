// Package guard decides whether a navigation may proceed.
//
// Guards are pure: they read an already loaded session.Reader and return a Decision. Performing the
// redirect is the caller's job (the portal's echo middleware, the CLI's `open` command).
package guard

import (
	"net/url"
	"strings"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

// Well-known navigation targets.
const (
	LoginPath         = "/login"
	StudentLanding    = "/student"
	InstructorLanding = "/instructor"
	AdminLanding      = "/admin/courses"
	ReturnURLParam    = "returnUrl"
)

// Decision is the outcome of a guard. A denied decision always carries a redirect target; an
// allowed one never does.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// Func is a guard: it decides whether the user in `store` may navigate to `intent`, the requested
// path including its query string.
type Func func(store session.Reader, intent string) Decision

// Auth lets any authenticated user through.
func Auth(store session.Reader, intent string) Decision {
	return check(store, intent, func(session.Role) bool { return true })
}

// Admin only lets admins through.
func Admin(store session.Reader, intent string) Decision {
	return check(store, intent, roleIn(session.RoleAdmin))
}

// Instructor lets instructors and admins through.
func Instructor(store session.Reader, intent string) Decision {
	return check(store, intent, roleIn(session.RoleInstructor, session.RoleAdmin))
}

// Student lets students and admins through.
func Student(store session.Reader, intent string) Decision {
	return check(store, intent, roleIn(session.RoleStudent, session.RoleAdmin))
}

func roleIn(roles ...session.Role) func(session.Role) bool {
	return func(role session.Role) bool {
		for _, r := range roles {
			if r == role {
				return true
			}
		}
		return false
	}
}

func check(store session.Reader, intent string, allowed func(session.Role) bool) Decision {
	if store == nil || !store.IsAuthenticated() {
		return redirect(LoginRedirect(intent))
	}

	user, ok := store.User()
	if ok && allowed(user.Role) {
		return allow()
	}
	if !ok {
		// token without identity: only the plain auth guard can tell it is authenticated
		if allowed(session.RoleUnknown) {
			return allow()
		}
		return redirect(LoginPath)
	}
	return redirect(Landing(user.Role))
}

// Landing is where a signed-in user with the wrong role is sent. Admins pass every guard and
// unknown roles have no landing page: both go back to the login page.
func Landing(role session.Role) string {
	switch role {
	case session.RoleStudent:
		return StudentLanding
	case session.RoleInstructor:
		return InstructorLanding
	default:
		return LoginPath
	}
}

// Home is where a user lands right after signing in without a return URL.
func Home(role session.Role) string {
	if role == session.RoleAdmin {
		return AdminLanding
	}
	return Landing(role)
}

// LoginRedirect returns the login path carrying `intent` as its returnUrl.
// Slashes are kept readable: /login?returnUrl=/student/my-courses
func LoginRedirect(intent string) string {
	if intent == "" {
		return LoginPath
	}
	escaped := strings.ReplaceAll(url.QueryEscape(intent), "%2F", "/")
	return LoginPath + "?" + ReturnURLParam + "=" + escaped
}

// SafeReturnURL returns `returnURL` when it is a local path, `fallback` otherwise.
// Browsers read `\` as `/` and drop tabs and newlines, so both are refused, encoded or not.
func SafeReturnURL(returnURL, fallback string) string {
	if !isLocalPath(returnURL) {
		return fallback
	}
	if decoded, err := url.PathUnescape(returnURL); err != nil || !isLocalPath(decoded) {
		return fallback
	}
	u, err := url.Parse(returnURL)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return returnURL
}

func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return false
	}
	return !strings.ContainsAny(p, "\\\t\r\n")
}
