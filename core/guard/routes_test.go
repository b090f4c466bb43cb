package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmedMostafa129/Mahd/core/session"
)

func TestRoutes_Match(t *testing.T) {
	tests := []struct {
		path       string
		wantScreen string
		wantGuard  Kind
		wantParams Params
	}{
		{"/login", "login", KindPublic, Params{}},
		{"/courses/42", "course-details", KindPublic, Params{"id": "42"}},
		{"/courses/42/content", "course-content", KindAuth, Params{"id": "42"}},
		{"/courses?page=3", "courses", KindPublic, Params{}},
		{"/admin/groups/9", "group-details", KindAdmin, Params{"id": "9"}},
		{"/student/", "student-dashboard", KindStudent, Params{}},
		{"/student/exams/5", "quiz-start", KindStudent, Params{"examId": "5"}},
		{"/student/exams/attempts/8", "quiz-result", KindStudent, Params{"attemptId": "8"}},
		{"/instructor/courses/create", "course-create", KindInstructor, Params{}},
		{"/instructor/courses/3/lessons/11/edit", "lesson-edit", KindInstructor, Params{"courseId": "3", "lessonId": "11"}},
		{"/instructor/groups/create", "group-create", KindInstructor, Params{}},
		{"/profile/a%20b", "instructor-profile", KindPublic, Params{"id": "a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, params, ok := Routes.Match(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.wantScreen, route.Screen)
			assert.Equal(t, tt.wantGuard, route.Guard)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestRoutes_NoMatch(t *testing.T) {
	for _, path := range []string{"/nope", "/admin", "/admin/groups", "/courses/1/content/extra"} {
		_, _, ok := Routes.Match(path)
		assert.False(t, ok, path)
	}
}

func TestRoutes_Redirects(t *testing.T) {
	route, params, ok := Routes.Match("/")
	require.True(t, ok)
	assert.True(t, route.IsRedirect())
	assert.Equal(t, "/register", route.Target(params))

	route, params, ok = Routes.Match("/instructor/courses/17")
	require.True(t, ok)
	assert.True(t, route.IsRedirect())
	assert.Equal(t, "/instructor/courses/17/content", route.Target(params))
}

func TestEvaluate(t *testing.T) {
	anon := storeFor(t, "", session.RoleUnknown)
	instructor := storeFor(t, "t", session.RoleInstructor)

	tests := []struct {
		name  string
		path  string
		store session.Reader
		want  Decision
	}{
		{"public route anonymous", "/courses", anon, Decision{Allow: true}},
		{"guarded route anonymous", "/student/my-courses", anon, Decision{Redirect: "/login?returnUrl=/student/my-courses"}},
		{"instructor on instructor route", "/instructor/courses", instructor, Decision{Allow: true}},
		{"instructor on student route", "/student", instructor, Decision{Redirect: "/instructor"}},
		{"instructor on admin route", "/admin/reports", instructor, Decision{Redirect: "/instructor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, _, ok := Routes.Match(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, Evaluate(route, tt.store, tt.path))
		})
	}
}

func TestRoutes_EveryGuardedRouteHasAScreen(t *testing.T) {
	for _, r := range Routes {
		if r.IsRedirect() {
			assert.Equal(t, KindPublic, r.Guard, r.Pattern)
			continue
		}
		assert.NotEmpty(t, r.Screen, r.Pattern)
	}
}
