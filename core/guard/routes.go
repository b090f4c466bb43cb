package guard

import (
	"net/url"
	"strings"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

// Kind names the guard protecting a route.
type Kind string

const (
	KindPublic     Kind = "public"
	KindAuth       Kind = "auth"
	KindAdmin      Kind = "admin"
	KindInstructor Kind = "instructor"
	KindStudent    Kind = "student"
)

// Func returns the guard for k. Public routes have none.
func (k Kind) Func() Func {
	switch k {
	case KindAuth:
		return Auth
	case KindAdmin:
		return Admin
	case KindInstructor:
		return Instructor
	case KindStudent:
		return Student
	default:
		return nil
	}
}

// Route is an entry of the portal's route table.
type Route struct {
	// Pattern is a slash separated path; segments starting with ':' are parameters.
	Pattern string
	Screen  string
	Guard   Kind
	// RedirectTo, when set, is a pattern the route forwards to with the same parameters.
	RedirectTo string

	segments []string
}

// Params are the path parameters of a matched route.
type Params map[string]string

// Table is an ordered route table; the first matching route wins.
type Table []*Route

// Routes is the portal's route table.
var Routes = NewTable(
	// public
	&Route{Pattern: "/", RedirectTo: "/register"},
	&Route{Pattern: "/register", Screen: "register"},
	&Route{Pattern: "/login", Screen: "login"},
	&Route{Pattern: "/forgot-password", Screen: "forgot-password"},
	&Route{Pattern: "/reset-password", Screen: "reset-password"},
	&Route{Pattern: "/verify-email", Screen: "verify-email"},
	&Route{Pattern: "/courses", Screen: "courses"},
	&Route{Pattern: "/courses/:id", Screen: "course-details"},
	&Route{Pattern: "/courses/:id/content", Screen: "course-content", Guard: KindAuth},
	&Route{Pattern: "/profile/:id", Screen: "instructor-profile"},

	// admin
	&Route{Pattern: "/admin/courses", Screen: "admin-courses", Guard: KindAdmin},
	&Route{Pattern: "/admin/payments", Screen: "admin-payments", Guard: KindAdmin},
	&Route{Pattern: "/admin/support", Screen: "admin-support", Guard: KindAdmin},
	&Route{Pattern: "/admin/subscriptions", Screen: "admin-subscriptions", Guard: KindAdmin},
	&Route{Pattern: "/admin/affiliates", Screen: "admin-affiliates", Guard: KindAdmin},
	&Route{Pattern: "/admin/reports", Screen: "admin-reports", Guard: KindAdmin},
	&Route{Pattern: "/admin/groups/:id", Screen: "group-details", Guard: KindAdmin},

	// student
	&Route{Pattern: "/student", Screen: "student-dashboard", Guard: KindStudent},
	&Route{Pattern: "/student/my-courses", Screen: "student-courses", Guard: KindStudent},
	&Route{Pattern: "/student/my-certificates", Screen: "student-certificates", Guard: KindStudent},
	&Route{Pattern: "/student/progress/:enrollmentId", Screen: "student-progress", Guard: KindStudent},
	&Route{Pattern: "/student/exams/:examId", Screen: "quiz-start", Guard: KindStudent},
	&Route{Pattern: "/student/exams/attempts/:attemptId", Screen: "quiz-result", Guard: KindStudent},
	&Route{Pattern: "/student/payments", Screen: "student-payments", Guard: KindStudent},
	&Route{Pattern: "/student/profile", Screen: "student-profile", Guard: KindStudent},
	&Route{Pattern: "/student/support", Screen: "student-support", Guard: KindStudent},

	// instructor
	&Route{Pattern: "/instructor", Screen: "instructor-dashboard", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses", Screen: "instructor-courses", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses/create", Screen: "course-create", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses/:id", RedirectTo: "/instructor/courses/:id/content"},
	&Route{Pattern: "/instructor/courses/:id/edit", Screen: "course-edit", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses/:id/content", Screen: "course-manage-content", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses/:courseId/lessons/create", Screen: "lesson-create", Guard: KindInstructor},
	&Route{Pattern: "/instructor/courses/:courseId/lessons/:lessonId/edit", Screen: "lesson-edit", Guard: KindInstructor},
	&Route{Pattern: "/instructor/exams", Screen: "instructor-exams", Guard: KindInstructor},
	&Route{Pattern: "/instructor/exams/create", Screen: "exam-create", Guard: KindInstructor},
	&Route{Pattern: "/instructor/exams/:id/edit", Screen: "exam-edit", Guard: KindInstructor},
	&Route{Pattern: "/instructor/exams/:id/questions", Screen: "exam-questions", Guard: KindInstructor},
	&Route{Pattern: "/instructor/groups", Screen: "instructor-groups", Guard: KindInstructor},
	&Route{Pattern: "/instructor/groups/create", Screen: "group-create", Guard: KindInstructor},
	&Route{Pattern: "/instructor/groups/:id", Screen: "group-details", Guard: KindInstructor},
	&Route{Pattern: "/instructor/groups/:id/edit", Screen: "group-edit", Guard: KindInstructor},
	&Route{Pattern: "/instructor/earnings", Screen: "instructor-earnings", Guard: KindInstructor},
	&Route{Pattern: "/instructor/subscription", Screen: "instructor-subscription", Guard: KindInstructor},
	&Route{Pattern: "/instructor/profile", Screen: "instructor-own-profile", Guard: KindInstructor},
)

// NewTable builds a Table, splitting every pattern once.
func NewTable(routes ...*Route) Table {
	for _, r := range routes {
		if r.Guard == "" {
			r.Guard = KindPublic
		}
		r.segments = split(r.Pattern)
	}
	return Table(routes)
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Match returns the first route matching `path` (query string ignored) and its parameters.
func (t Table) Match(path string) (*Route, Params, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := split(path)

	for _, r := range t {
		if params, ok := r.match(segments); ok {
			return r, params, true
		}
	}
	return nil, nil, false
}

// ByScreen returns the first route rendering `screen` under guard `kind`.
func (t Table) ByScreen(screen string, kind Kind) (*Route, bool) {
	for _, r := range t {
		if r.Screen == screen && r.Guard == kind {
			return r, true
		}
	}
	return nil, false
}

func (r *Route) match(segments []string) (Params, bool) {
	if len(segments) != len(r.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range r.segments {
		if strings.HasPrefix(seg, ":") {
			value, err := url.PathUnescape(segments[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[seg[1:]] = value
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// IsRedirect reports whether the route only forwards elsewhere.
func (r *Route) IsRedirect() bool {
	return r.RedirectTo != ""
}

// Target expands RedirectTo with `params`.
func (r *Route) Target(params Params) string {
	parts := split(r.RedirectTo)
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = url.PathEscape(params[p[1:]])
		}
	}
	return "/" + strings.Join(parts, "/")
}

// Evaluate runs the route's guard for `intent`. Public routes are always allowed.
func Evaluate(r *Route, store session.Reader, intent string) Decision {
	check := r.Guard.Func()
	if check == nil {
		return allow()
	}
	return check(store, intent)
}
