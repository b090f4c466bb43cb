package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Error is a non-2xx answer of the remote API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// StatusOf returns the API status carried by err, or 0.
func StatusOf(err error) int {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Status
	}
	return 0
}

// IsUnauthorized reports whether the API rejected the session's token.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether the API answered 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// errorBody covers the shapes the API uses for failures: {message}, {error}, and the
// problem-details {title, detail, errors:{field:[msgs]}}.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Title   string              `json:"title"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors"`
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status, Message: http.StatusText(status)}

	var b errorBody
	if err := json.Unmarshal(body, &b); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
			e.Message = text
		}
		return e
	}

	switch {
	case b.Message != "":
		e.Message = b.Message
	case b.Error != "":
		e.Message = b.Error
	case b.Detail != "":
		e.Message = b.Detail
	case len(b.Errors) > 0:
		e.Message = firstFieldError(b.Errors)
	case b.Title != "":
		e.Message = b.Title
	}
	return e
}

func firstFieldError(errs map[string][]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if len(errs[f]) > 0 {
			return errs[f][0]
		}
	}
	return ""
}
