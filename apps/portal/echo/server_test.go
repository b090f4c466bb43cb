package echoportal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

func TestServer_guards(t *testing.T) {
	p := setup(t)
	student := p.signIn(t, session.RoleStudent)
	instructor := p.signIn(t, session.RoleInstructor)
	admin := p.signIn(t, session.RoleAdmin)

	tests := []httpTest{
		{
			name:         "anonymous is sent to login with the full intent",
			method:       http.MethodGet,
			path:         "/student/my-courses?page=2",
			wantCode:     http.StatusFound,
			wantLocation: "/login?returnUrl=/student/my-courses%3Fpage%3D2",
		},
		{
			name:         "anonymous on auth-only route",
			method:       http.MethodGet,
			path:         "/courses/c-1/content",
			wantCode:     http.StatusFound,
			wantLocation: "/login?returnUrl=/courses/c-1/content",
		},
		{
			name:         "student on instructor route lands home",
			method:       http.MethodGet,
			path:         "/instructor",
			sid:          student,
			wantCode:     http.StatusFound,
			wantLocation: "/student",
		},
		{
			name:         "instructor on admin route lands home",
			method:       http.MethodGet,
			path:         "/admin/courses",
			sid:          instructor,
			wantCode:     http.StatusFound,
			wantLocation: "/instructor",
		},
		{
			name:     "admin passes instructor guard",
			method:   http.MethodGet,
			path:     "/instructor/courses/create",
			sid:      admin,
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"course-create"}`),
		},
		{
			name:     "public screen",
			method:   http.MethodGet,
			path:     "/register",
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"register"}`),
		},
		{
			name:         "root redirects to register",
			method:       http.MethodGet,
			path:         "/",
			wantCode:     http.StatusFound,
			wantLocation: "/register",
		},
		{
			name:         "instructor course redirects to its content",
			method:       http.MethodGet,
			path:         "/instructor/courses/42",
			wantCode:     http.StatusFound,
			wantLocation: "/instructor/courses/42/content",
		},
		{
			name:     "login screen keeps the return url",
			method:   http.MethodGet,
			path:     "/login?returnUrl=/student",
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"login","data":{"returnUrl":"/student"}}`),
		},
		{
			name:         "mutating action is guarded too",
			method:       http.MethodPost,
			path:         "/admin/support/t-1/resolve",
			sid:          student,
			wantCode:     http.StatusFound,
			wantLocation: "/student",
		},
	}

	runHTTPTests(t, p, tests)
}

func TestServer_guardMetrics(t *testing.T) {
	p := setup(t)
	student := p.signIn(t, session.RoleStudent)

	req, rec := newSessionRequest(http.MethodGet, "/admin/reports", student)
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.guardDecisions.WithLabelValues("admin", "redirect")))

	req, rec = newRequest(http.MethodGet, "/metrics")
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mahd_portal_guard_decisions_total{guard="admin",outcome="redirect"} 1`)
}

func TestServer_health(t *testing.T) {
	p := setup(t)
	runHTTPTests(t, p, []httpTest{
		{name: "ok", method: http.MethodGet, path: "/health", wantCode: http.StatusOK, wantData: []byte(`{"status":"ok"}`)},
	})
}

func TestServer_sessionCookie(t *testing.T) {
	p := setup(t)

	req, rec := newRequest(http.MethodGet, "/register")
	p.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, defaultCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)

	// a known session keeps its id
	req, rec = newSessionRequest(http.MethodGet, "/register", cookies[0].Value)
	p.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())

	// a forged id is replaced
	req, rec = newSessionRequest(http.MethodGet, "/register", "not-a-uuid")
	p.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "not-a-uuid", rec.Result().Cookies()[0].Value)
}

func TestServer_login(t *testing.T) {
	p := setup(t)
	p.api.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		switch creds["email"] {
		case "student@mahd.test":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"token": "tkn-student",
				"user":  map[string]interface{}{"userId": "s-1", "fullName": "Sara", "role": 2},
			})
		case "admin@mahd.test":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"token": "tkn-admin",
				"user":  map[string]interface{}{"userId": "a-1", "role": "Admin"},
			})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		}
	})

	tests := []httpTest{
		{
			name:         "back to the return url",
			method:       http.MethodPost,
			path:         "/login",
			body:         []byte(`{"email":"student@mahd.test","password":"secret1","returnUrl":"/student/my-courses"}`),
			wantCode:     http.StatusFound,
			wantLocation: "/student/my-courses",
		},
		{
			name:         "return url from the query string",
			method:       http.MethodPost,
			path:         "/login?returnUrl=/student/payments",
			body:         []byte(`{"email":"student@mahd.test","password":"secret1"}`),
			wantCode:     http.StatusFound,
			wantLocation: "/student/payments",
		},
		{
			name:         "admin home",
			method:       http.MethodPost,
			path:         "/login",
			body:         []byte(`{"email":"admin@mahd.test","password":"secret1"}`),
			wantCode:     http.StatusFound,
			wantLocation: "/admin/courses",
		},
		{
			name:         "external return url is ignored",
			method:       http.MethodPost,
			path:         "/login",
			body:         []byte(`{"email":"student@mahd.test","password":"secret1","returnUrl":"//evil.test/x"}`),
			wantCode:     http.StatusFound,
			wantLocation: "/student",
		},
		{
			name:         "backslash return url is ignored",
			method:       http.MethodPost,
			path:         "/login",
			body:         []byte(`{"email":"student@mahd.test","password":"secret1","returnUrl":"/\\evil.test/x"}`),
			wantCode:     http.StatusFound,
			wantLocation: "/student",
		},
		{
			name:     "bad credentials are shown inline",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{"email":"nobody@mahd.test","password":"secret1","returnUrl":"/student"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"login","data":{"returnUrl":"/student"},"error":"Invalid email or password"}`),
		},
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/login",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required"}`),
		},
	}

	runHTTPTests(t, p, tests)
}

func TestServer_loginForm(t *testing.T) {
	p := setup(t)
	p.api.reply("POST /auth/login", http.StatusOK, map[string]interface{}{
		"token": "tkn",
		"user":  map[string]interface{}{"userId": "i-1", "role": "1"},
	})

	form := url.Values{"email": {"inst@mahd.test"}, "password": {"secret1"}}
	req, rec := newRequest(http.MethodPost, "/login", []byte(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	p.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/instructor", rec.Header().Get("Location"))

	// the new session is the browser's from now on
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	req, rec = newSessionRequest(http.MethodGet, "/instructor/courses/create", cookies[0].Value)
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_logout(t *testing.T) {
	p := setup(t)
	sid := p.signIn(t, session.RoleStudent)
	p.api.reply("POST /auth/logout", http.StatusInternalServerError, map[string]string{"message": "boom"})

	req, rec := newSessionRequest(http.MethodPost, "/logout", sid)
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// cleared despite the API failure
	req, rec = newSessionRequest(http.MethodGet, "/student", sid)
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?returnUrl=/student", rec.Header().Get("Location"))
}

func TestServer_logoutNetworkError(t *testing.T) {
	p := setup(t)
	sid := p.signIn(t, session.RoleStudent)
	p.api.Close() // the API cannot be reached at all

	req, rec := newSessionRequest(http.MethodPost, "/logout", sid)
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req, rec = newSessionRequest(http.MethodGet, "/student", sid)
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?returnUrl=/student", rec.Header().Get("Location"))
}

func TestServer_loginRenewsSession(t *testing.T) {
	p := setup(t)
	p.api.reply("POST /auth/login", http.StatusOK, map[string]interface{}{
		"token": "tkn",
		"user":  map[string]interface{}{"userId": "s-1", "role": 2},
	})

	// a session id handed out before signing in
	req, rec := newRequest(http.MethodGet, "/login")
	p.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1)
	before := rec.Result().Cookies()[0].Value

	req, rec = newSessionRequest(http.MethodPost, "/login", before, []byte(`{"email":"s@mahd.test","password":"secret1"}`))
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	after := cookies[0].Value
	assert.NotEqual(t, before, after)

	req, rec = newSessionRequest(http.MethodGet, "/student/profile", after)
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the old id stays anonymous
	req, rec = newSessionRequest(http.MethodGet, "/student/profile", before)
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?returnUrl=/student/profile", rec.Header().Get("Location"))
}

// closedStorage is a session storage whose backend has been shut down.
type closedStorage struct{}

func (closedStorage) Get(context.Context, string) (string, error) {
	return "", core.NewShutdownError("session storage closed")
}

func (closedStorage) Set(context.Context, string, string) error {
	return core.NewShutdownError("session storage closed")
}

func (closedStorage) Delete(context.Context, ...string) error {
	return core.NewShutdownError("session storage closed")
}

func TestServer_closedStorageStopsPortal(t *testing.T) {
	p := setupWith(t, closedStorage{})

	req, rec := newRequest(http.MethodGet, "/courses")
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	select {
	case <-p.ShutdownSignal():
	default:
		t.Error("shutdown was not signalled")
	}
}

func TestServer_screens(t *testing.T) {
	p := setup(t)
	student := p.signIn(t, session.RoleStudent)

	p.api.reply("GET /enrollments/student/u-1", http.StatusOK, map[string]interface{}{
		"items":      []map[string]interface{}{{"enrollmentId": "e-1", "courseId": "c-1", "progressPercentage": 50}},
		"totalCount": 1,
		"pageNumber": 1,
		"pageSize":   10,
	})
	p.api.reply("GET /courses/c-1", http.StatusOK, map[string]interface{}{"courseId": "c-1", "title": "Go"})

	t.Run("request carries the session", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/student/my-courses", student)
		p.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var view struct {
			Screen string `json:"screen"`
			Data   struct {
				Items []map[string]interface{} `json:"items"`
			} `json:"data"`
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "student-courses", view.Screen)
		assert.Empty(t, view.Error)
		require.Len(t, view.Data.Items, 1)
		assert.Equal(t, "e-1", view.Data.Items[0]["enrollmentId"])

		upstream := p.api.lastRequest()
		require.NotNil(t, upstream)
		assert.Equal(t, "Bearer token-Student", upstream.Header.Get("Authorization"))
		assert.Equal(t, testDeviceID, upstream.Header.Get("X-Device-Id"))
		assert.Equal(t, "1", upstream.URL.Query().Get("pageNumber"))
	})

	t.Run("failure is inline", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/student/progress/e-404", student)
		p.ServeHTTP(rec, req)
		checkResponse(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"student-progress","error":"Resource not found"}`),
		}, rec)
	})

	t.Run("partial data is kept", func(t *testing.T) {
		// the course loads, its lessons do not
		req, rec := newSessionRequest(http.MethodGet, "/courses/c-1/content", student)
		p.ServeHTTP(rec, req)
		checkResponse(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"course-content","data":{"course":` + courseJSON(t, p) + `},"error":"Resource not found"}`),
		}, rec)
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(p.metrics.upstreamRequests.WithLabelValues("4xx")))
}

// courseJSON renders c-1 the way the portal does.
func courseJSON(t *testing.T, p *testPortal) string {
	course, err := p.opts.LMS.Courses.Get(context.Background(), "c-1")
	require.NoError(t, err)
	return string(marshalObj(t, course))
}

func TestServer_actions(t *testing.T) {
	p := setup(t)
	instructor := p.signIn(t, session.RoleInstructor)

	var created map[string]interface{}
	p.api.handle("POST /courses", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&created)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"courseId":     "c-9",
			"title":        created["title"],
			"description":  created["description"],
			"price":        created["price"],
			"instructorId": created["instructorId"],
			"createdAt":    "2024-05-01T10:00:00Z",
		})
	})
	p.api.reply("DELETE /courses/c-1", http.StatusForbidden, map[string]string{"message": "Not your course"})

	tests := []httpTest{
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/instructor/courses/create",
			body:     []byte(`{"title":"Go 101","description":"Basics","price":10,"instructorId":"someone-else"}`),
			sid:      instructor,
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"course-create","data":{
				"courseId":"c-9","title":"Go 101","description":"Basics","price":10,"instructorId":"u-1",
				"isPublished":false,"averageRating":0,"enrollmentsCount":0,"createdAt":"2024-05-01T10:00:00Z"}}`),
		},
		{
			name:     "invalid input",
			method:   http.MethodPost,
			path:     "/instructor/courses/create",
			body:     []byte(`{"price":-1}`),
			sid:      instructor,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "api refusal is inline",
			method:   http.MethodDelete,
			path:     "/instructor/courses/c-1/content",
			sid:      instructor,
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"course-manage-content","error":"Not your course"}`),
		},
	}
	runHTTPTests(t, p, tests)

	assert.Equal(t, "u-1", created["instructorId"], "instructor comes from the session")
}

func TestServer_actionValidationFields(t *testing.T) {
	p := setup(t)
	instructor := p.signIn(t, session.RoleInstructor)

	req, rec := newSessionRequest(http.MethodPost, "/instructor/courses/create", instructor, []byte(`{}`))
	p.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, "this field is required", fields["title"])
	assert.Equal(t, "this field is required", fields["description"])
}

func TestServer_messageForms(t *testing.T) {
	p := setup(t)
	p.api.reply("POST /auth/forgot-password", http.StatusOK, map[string]string{"message": "Check your inbox"})
	p.api.reply("POST /auth/verify-email", http.StatusBadRequest, map[string]string{"message": "Link expired"})
	student := p.signIn(t, session.RoleStudent)

	tests := []httpTest{
		{
			name:     "forgot password",
			method:   http.MethodPost,
			path:     "/forgot-password",
			body:     []byte(`{"email":"Someone@Mahd.test "}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"forgot-password","data":{"message":"Check your inbox"}}`),
		},
		{
			name:     "verify email from the emailed link",
			method:   http.MethodGet,
			path:     "/verify-email?email=a@mahd.test&token=t1",
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"verify-email","error":"Link expired"}`),
		},
		{
			name:     "verify email screen without a link",
			method:   http.MethodGet,
			path:     "/verify-email",
			wantCode: http.StatusOK,
			wantData: []byte(`{"screen":"verify-email"}`),
		},
		{
			name:     "change password needs matching passwords",
			method:   http.MethodPost,
			path:     "/student/profile/password",
			body:     []byte(`{"currentPassword":"old-pass1","newPassword":"new-pass1","confirmNewPassword":"other-pass1"}`),
			sid:      student,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"confirmNewPassword":"passwords do not match"}`),
		},
		{
			name:         "change password is student only",
			method:       http.MethodPost,
			path:         "/student/profile/password",
			body:         []byte(`{}`),
			wantCode:     http.StatusFound,
			wantLocation: "/login?returnUrl=/student/profile/password",
		},
	}
	runHTTPTests(t, p, tests)

	last := p.api.lastRequest()
	require.NotNil(t, last)
	assert.Equal(t, "/auth/verify-email", last.URL.Path, "rejected forms never reach the API")
}

func TestServer_unknownRoute(t *testing.T) {
	p := setup(t)
	req, rec := newRequest(http.MethodGet, "/nowhere")
	p.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.JSONEq(t, `{"error":"Not Found"}`, string(body))
}
