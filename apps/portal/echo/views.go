package echoportal

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AhmedMostafa129/Mahd/core/screens"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// View is what every screen renders.
type View struct {
	Screen string      `json:"screen"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// loadFunc performs a screen action for the signed-in user.
type loadFunc func(ctx echo.Context, usr session.Identity) (interface{}, error)

// echoRequest lets screen loaders read an echo request.
type echoRequest struct {
	ec echo.Context
}

func (r echoRequest) Context() context.Context {
	return r.ec.Request().Context()
}

func (r echoRequest) Param(name string) string {
	return r.ec.Param(name)
}

func (r echoRequest) QueryParam(name string) string {
	return r.ec.QueryParam(name)
}

// screen renders GET requests. A failed load still renders the screen, with the error inline.
func (s *Server) screen(name string, load screens.Loader) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if load == nil {
			return ctx.JSON(http.StatusOK, View{Screen: name})
		}
		usr, _ := currentUser(ctx)
		data, err := load(echoRequest{ec: ctx}, usr)
		return s.render(ctx, name, data, err)
	}
}

// action handles a mutating request. Input errors go to the error handler; API failures are inline.
func (s *Server) action(name string, do loadFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, _ := currentUser(ctx)
		data, err := do(ctx, usr)
		if err != nil && !isInline(err) {
			return err
		}
		return s.render(ctx, name, data, err)
	}
}

func (s *Server) render(ctx echo.Context, name string, data interface{}, err error) error {
	v := View{Screen: name, Data: data}
	if err != nil {
		if d, ok := data.(screens.Data); !ok || len(d) == 0 {
			v.Data = nil
		}
		v.Error = inlineMessage(err)

		args := []interface{}{"screen", name, err}
		if usr, ok := currentUser(ctx); ok {
			args = append(args, usr)
		}
		s.opts.Logger.Warn("screen request failed", args...)
	}
	return ctx.JSON(http.StatusOK, v)
}

// bind decodes the request into `in` (form or JSON) and validates it.
// `prepare` runs in between, to set what the client does not get to choose.
func (s *Server) bind(ctx echo.Context, in interface{}, prepare ...func()) error {
	if err := ctx.Bind(in); err != nil {
		return err
	}
	for _, fn := range prepare {
		fn()
	}
	return s.opts.Validate.Struct(in)
}
