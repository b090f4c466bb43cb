package echoportal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/api"
	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

const testDeviceID = "portal-test"

// fakeAPI answers "METHOD /path" with the registered handler and 404 otherwise.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []*http.Request
}

func newFakeAPI(t *testing.T) *fakeAPI {
	f := &fakeAPI{handlers: make(map[string]http.HandlerFunc)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r)
		h, ok := f.handlers[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Resource not found"})
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) handle(route string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[route] = h
}

func (f *fakeAPI) reply(route string, code int, body interface{}) {
	f.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, code, body)
	})
}

func (f *fakeAPI) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

type testPortal struct {
	*Server
	api     *fakeAPI
	storage session.Storage
	metrics *Metrics
}

func setup(t *testing.T) *testPortal {
	return setupWith(t, session.NewMemoryStorage())
}

func setupWith(t *testing.T, storage session.Storage) *testPortal {
	fake := newFakeAPI(t)
	validate, translator := core.NewValidator()
	metrics := NewMetrics()

	transport := &api.Transport{DeviceID: testDeviceID, Observe: metrics.ObserveUpstream}
	client := api.NewClient(fake.URL, api.NewHTTPClient(transport, 5*time.Second))

	srv := NewServer(&Options{
		TestMode:       true,
		DisableReqLogs: true,
		CookieTTL:      time.Hour,
		Storage:        storage,
		Auth:           auth.NewService(client, validate, nil),
		LMS:            lms.NewServices(client),
		Validate:       validate,
		Translator:     translator,
		Metrics:        metrics,
	})
	return &testPortal{Server: srv, api: fake, storage: storage, metrics: metrics}
}

// signIn stores a session for a new browser and returns its session id.
func (p *testPortal) signIn(t *testing.T, role session.Role) string {
	sid := uuid.NewString()
	store := session.NewStore(session.Namespace(p.storage, sid), nil)
	err := store.Set(context.Background(), session.Session{
		Token: "token-" + role.String(),
		User:  session.Identity{UserID: "u-1", FullName: "Test User", Role: role},
	})
	require.NoError(t, err)
	return sid
}

type httpTest struct {
	name         string
	method       string
	path         string
	body         []byte
	sid          string
	wantCode     int
	wantData     []byte
	wantLocation string
}

func newSessionRequest(method, path, sid string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: defaultCookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newSessionRequest(method, path, "", data...)
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantLocation != "" {
		if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
			t.Errorf("failed! location = %q; wantLocation %q", loc, tt.wantLocation)
		}
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, srv http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(tt.method, tt.path, tt.sid, tt.body)
			srv.ServeHTTP(rec, req)
			checkResponse(t, tt, rec)
		})
	}
}
