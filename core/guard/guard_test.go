package guard

import (
	"context"
	"net/url"
	"testing"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

func storeFor(t *testing.T, token string, role session.Role) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage(), nil)
	if token != "" {
		sess := session.Session{Token: token, User: session.Identity{UserID: "u1", Role: role}}
		if err := store.Set(context.Background(), sess); err != nil {
			t.Fatalf("store.Set() failed: %v", err)
		}
	}
	return store
}

func TestGuards(t *testing.T) {
	anon := storeFor(t, "", session.RoleUnknown)
	admin := storeFor(t, "t-admin", session.RoleAdmin)
	instructor := storeFor(t, "t-instructor", session.RoleInstructor)
	student := storeFor(t, "t-student", session.RoleStudent)
	unknown := storeFor(t, "t-unknown", session.RoleUnknown)

	tests := []struct {
		name   string
		guard  Func
		store  session.Reader
		intent string
		want   Decision
	}{
		{"auth anonymous", Auth, anon, "/courses/7/content", Decision{Redirect: "/login?returnUrl=/courses/7/content"}},
		{"auth student", Auth, student, "/courses/7/content", Decision{Allow: true}},
		{"auth unknown role", Auth, unknown, "/courses/7/content", Decision{Allow: true}},

		{"admin anonymous", Admin, anon, "/admin/courses", Decision{Redirect: "/login?returnUrl=/admin/courses"}},
		{"admin admin", Admin, admin, "/admin/courses", Decision{Allow: true}},
		{"admin student", Admin, student, "/admin/courses", Decision{Redirect: "/student"}},
		{"admin instructor", Admin, instructor, "/admin/courses", Decision{Redirect: "/instructor"}},
		{"admin unknown role", Admin, unknown, "/admin/courses", Decision{Redirect: "/login"}},

		{"instructor anonymous", Instructor, anon, "/instructor", Decision{Redirect: "/login?returnUrl=/instructor"}},
		{"instructor instructor", Instructor, instructor, "/instructor/courses", Decision{Allow: true}},
		{"instructor admin", Instructor, admin, "/instructor/courses", Decision{Allow: true}},
		{"instructor student", Instructor, student, "/instructor/courses", Decision{Redirect: "/student"}},
		{"instructor unknown role", Instructor, unknown, "/instructor", Decision{Redirect: "/login"}},

		{"student anonymous", Student, anon, "/student/my-courses", Decision{Redirect: "/login?returnUrl=/student/my-courses"}},
		{"student student", Student, student, "/student/my-courses", Decision{Allow: true}},
		{"student admin", Student, admin, "/student", Decision{Allow: true}},
		{"student instructor", Student, instructor, "/student", Decision{Redirect: "/instructor"}},
		{"student unknown role", Student, unknown, "/student", Decision{Redirect: "/login"}},

		{"nil store", Student, nil, "/student", Decision{Redirect: "/login?returnUrl=/student"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.guard(tt.store, tt.intent)
			if got != tt.want {
				t.Errorf("guard() = %+v, want %+v", got, tt.want)
			}
			if got.Allow == (got.Redirect != "") {
				t.Errorf("guard() = %+v: allowed decisions never redirect, denied ones always do", got)
			}
		})
	}
}

func TestGuards_adminPassesAll(t *testing.T) {
	admin := storeFor(t, "t-admin", session.RoleAdmin)
	for _, g := range []Kind{KindAuth, KindAdmin, KindInstructor, KindStudent} {
		if d := g.Func()(admin, "/anywhere"); !d.Allow {
			t.Errorf("%s guard denied admin: %+v", g, d)
		}
	}
}

func TestGuards_tokenWithoutIdentity(t *testing.T) {
	storage := session.NewMemoryStorage()
	_ = storage.Set(context.Background(), "token", "t")
	store := session.NewStore(storage, nil)
	if err := store.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if d := Auth(store, "/courses/1/content"); !d.Allow {
		t.Errorf("Auth() = %+v, want allow", d)
	}
	if d := Student(store, "/student"); d != (Decision{Redirect: LoginPath}) {
		t.Errorf("Student() = %+v, want redirect to %s", d, LoginPath)
	}
}

func TestLoginRedirect(t *testing.T) {
	tests := []struct {
		intent string
		want   string
	}{
		{"", "/login"},
		{"/student/my-courses", "/login?returnUrl=/student/my-courses"},
		{"/courses?page=2&q=go lang", "/login?returnUrl=/courses%3Fpage%3D2%26q%3Dgo+lang"},
	}
	for _, tt := range tests {
		got := LoginRedirect(tt.intent)
		if got != tt.want {
			t.Errorf("LoginRedirect(%q) = %q, want %q", tt.intent, got, tt.want)
		}

		// the intent survives a round trip through the query string
		u, err := url.Parse(got)
		if err != nil {
			t.Fatal(err)
		}
		if back := u.Query().Get(ReturnURLParam); back != tt.intent {
			t.Errorf("returnUrl of %q = %q, want %q", got, back, tt.intent)
		}
	}
}

func TestSafeReturnURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/student/my-courses", "/student/my-courses"},
		{"/courses?page=2", "/courses?page=2"},
		{"", "/fallback"},
		{"https://evil.test/", "/fallback"},
		{"//evil.test/x", "/fallback"},
		{"student", "/fallback"},
		{"/\\evil.test/x", "/fallback"},
		{"/%5Cevil.test/x", "/fallback"},
		{"/%2F/evil.test/x", "/fallback"},
		{"/\t/evil.test/x", "/fallback"},
		{"/courses/%41", "/courses/%41"},
	}
	for _, tt := range tests {
		if got := SafeReturnURL(tt.in, "/fallback"); got != tt.want {
			t.Errorf("SafeReturnURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHome(t *testing.T) {
	tests := map[session.Role]string{
		session.RoleAdmin:      AdminLanding,
		session.RoleInstructor: InstructorLanding,
		session.RoleStudent:    StudentLanding,
		session.RoleUnknown:    LoginPath,
	}
	for role, want := range tests {
		if got := Home(role); got != want {
			t.Errorf("Home(%v) = %q, want %q", role, got, want)
		}
	}
}
