package api

import (
	"net/http"
	"sort"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// Header names set on every outgoing API request.
const (
	HeaderAuthorization = "Authorization"
	HeaderDeviceID      = "X-Device-Id"
)

// Observer is notified of every completed round trip. resp is nil when err is not.
type Observer func(req *http.Request, resp *http.Response, err error)

// Transport decorates outgoing API requests with the session's bearer token and the device id.
//
// The token is read from the session.Store carried by the request context. Responses and errors
// pass through untouched; nothing is retried or cached.
type Transport struct {
	Base       http.RoundTripper
	DeviceID   string
	Logger     core.Logger
	Production bool
	Observe    Observer
}

var _ http.RoundTripper = (*Transport)(nil)

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	token, hasToken := "", false
	if store, ok := session.FromContext(req.Context()); ok {
		token, hasToken = store.Token()
	}
	if hasToken {
		out.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	out.Header.Set(HeaderDeviceID, t.DeviceID)

	if !t.Production {
		t.logger().Debug("api request",
			"method", out.Method,
			"url", out.URL.String(),
			"hasToken", hasToken,
			"deviceId", t.DeviceID,
			"headers", headerNames(out.Header),
		)
	}

	resp, err := t.base().RoundTrip(out)

	if !t.Production {
		if err != nil {
			t.logger().Debug("api request failed", "method", out.Method, "url", out.URL.String(), "error", err)
		} else {
			t.logger().Debug("api response", "url", out.URL.String(), "status", resp.StatusCode)
		}
	}
	if t.Observe != nil {
		t.Observe(out, resp, err)
	}
	return resp, err
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *Transport) logger() core.Logger {
	if t.Logger == nil {
		return core.NopLogger()
	}
	return t.Logger
}

// headerNames lists header keys only; values may hold credentials.
func headerNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
