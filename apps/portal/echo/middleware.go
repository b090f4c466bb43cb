package echoportal

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/guard"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// sessionMiddleware gives every browser session its own Token Store, loaded from the shared storage
// under the session id carried by the cookie.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sid := s.sessionID(ctx)
		store := session.NewStore(session.Namespace(s.opts.Storage, sid), s.opts.Logger)

		req := ctx.Request()
		// a failing storage leaves the store signed out; the store logs it.
		// A storage that is gone for good stops the portal instead.
		if err := store.Load(req.Context()); core.IsShutdown(err) {
			return err
		}

		ctx.SetRequest(req.WithContext(session.NewContext(req.Context(), store)))
		return next(ctx)
	}
}

const ctxKeySessionIssued = "mahd.sessionIssued"

func (s *Server) sessionID(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(s.opts.CookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	return s.issueSessionID(ctx)
}

func (s *Server) issueSessionID(ctx echo.Context) string {
	ctx.Set(ctxKeySessionIssued, true)
	sid := uuid.NewString()
	ctx.SetCookie(&http.Cookie{
		Name:     s.opts.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(s.opts.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// renewSession moves the request to a new, empty session before signing in, so a session id
// known before authentication never becomes an authenticated one.
func (s *Server) renewSession(ctx echo.Context) {
	if issued, _ := ctx.Get(ctxKeySessionIssued).(bool); issued {
		return
	}
	req := ctx.Request()
	if old, ok := storeFrom(ctx); ok && old != nil {
		if err := old.ClearAll(req.Context()); err != nil {
			s.opts.Logger.Warn("clearing previous session", "error", err)
		}
	}

	store := session.NewStore(session.Namespace(s.opts.Storage, s.issueSessionID(ctx)), s.opts.Logger)
	ctx.SetRequest(req.WithContext(session.NewContext(req.Context(), store)))
}

// guardMiddleware runs the guard of `kind` against the request's Token Store and redirects on deny.
func (s *Server) guardMiddleware(kind guard.Kind) echo.MiddlewareFunc {
	check := kind.Func()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if check == nil {
			return next
		}
		return func(ctx echo.Context) error {
			decision := check(readerFrom(ctx), ctx.Request().URL.RequestURI())
			s.opts.Metrics.ObserveGuard(kind, decision)
			if !decision.Allow {
				return ctx.Redirect(http.StatusFound, decision.Redirect)
			}
			return next(ctx)
		}
	}
}

func redirectTo(r *guard.Route) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		params := make(guard.Params, len(ctx.ParamNames()))
		for _, name := range ctx.ParamNames() {
			params[name] = ctx.Param(name)
		}
		return ctx.Redirect(http.StatusFound, r.Target(params))
	}
}

func storeFrom(ctx echo.Context) (*session.Store, bool) {
	return session.FromContext(ctx.Request().Context())
}

// readerFrom never returns a typed nil: guards treat a nil Reader as signed out.
func readerFrom(ctx echo.Context) session.Reader {
	if store, ok := storeFrom(ctx); ok && store != nil {
		return store
	}
	return nil
}

func currentUser(ctx echo.Context) (session.Identity, bool) {
	store, ok := storeFrom(ctx)
	if !ok || store == nil {
		return session.Identity{}, false
	}
	return store.User()
}
