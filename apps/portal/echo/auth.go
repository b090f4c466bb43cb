package echoportal

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/guard"
	"github.com/AhmedMostafa129/Mahd/core/screens"
)

func (s *Server) registerAuth(g *echo.Group) {
	g.POST("/login", s.login)
	g.POST("/register", s.register)
	g.POST("/logout", s.logout)
	g.POST("/verify-email", s.verifyEmail)
	g.POST("/forgot-password", s.forgotPassword)
	g.POST("/reset-password", s.resetPassword)
	g.POST("/student/profile/password", s.changePassword, s.guardMiddleware(guard.KindStudent))
}

type loginRequest struct {
	auth.Credentials
	ReturnURL string `json:"returnUrl" form:"returnUrl"`
}

func (s *Server) login(ctx echo.Context) error {
	data := new(loginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if data.ReturnURL == "" {
		data.ReturnURL = ctx.QueryParam(guard.ReturnURLParam)
	}

	s.renewSession(ctx)
	sess, err := s.opts.Auth.Login(ctx.Request().Context(), data.Credentials)
	if err != nil {
		if !isInline(err) {
			return err
		}
		return s.render(ctx, "login", screens.Data{guard.ReturnURLParam: data.ReturnURL}, err)
	}

	s.opts.Logger.Info("signed in", sess.User)
	return ctx.Redirect(http.StatusFound, guard.SafeReturnURL(data.ReturnURL, guard.Home(sess.User.Role)))
}

func (s *Server) register(ctx echo.Context) error {
	data := new(auth.Registration)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	s.renewSession(ctx)
	res, err := s.opts.Auth.Register(ctx.Request().Context(), *data)
	if err != nil {
		if !isInline(err) {
			return err
		}
		return s.render(ctx, "register", nil, err)
	}
	if res.SignedIn() {
		return ctx.Redirect(http.StatusFound, guard.Home(res.Session.User.Role))
	}
	return s.render(ctx, "register", echo.Map{"message": res.Message}, nil)
}

// logout always ends the local session, even when the API could not be told.
func (s *Server) logout(ctx echo.Context) error {
	if err := s.opts.Auth.ForceLogout(ctx.Request().Context()); err != nil {
		s.opts.Logger.Warn("logout endpoint failed; session cleared locally", err)
	}
	return ctx.Redirect(http.StatusFound, guard.LoginPath)
}

// messageForm handles the auth forms answered by a single message from the API.
func (s *Server) messageForm(ctx echo.Context, screen string, in interface{}, send func() (string, error)) error {
	if err := ctx.Bind(in); err != nil {
		return err
	}
	msg, err := send()
	if err != nil && !isInline(err) {
		return err
	}
	var data interface{}
	if err == nil {
		data = echo.Map{"message": msg}
	}
	return s.render(ctx, screen, data, err)
}

func (s *Server) verifyEmail(ctx echo.Context) error {
	data := new(auth.EmailVerification)
	return s.messageForm(ctx, "verify-email", data, func() (string, error) {
		return s.opts.Auth.VerifyEmail(ctx.Request().Context(), *data)
	})
}

func (s *Server) forgotPassword(ctx echo.Context) error {
	data := new(auth.ForgotPassword)
	return s.messageForm(ctx, "forgot-password", data, func() (string, error) {
		return s.opts.Auth.ForgotPassword(ctx.Request().Context(), *data)
	})
}

func (s *Server) resetPassword(ctx echo.Context) error {
	data := new(auth.PasswordReset)
	return s.messageForm(ctx, "reset-password", data, func() (string, error) {
		return s.opts.Auth.ResetPassword(ctx.Request().Context(), *data)
	})
}

func (s *Server) changePassword(ctx echo.Context) error {
	data := new(auth.PasswordChange)
	return s.messageForm(ctx, "student-profile", data, func() (string, error) {
		return s.opts.Auth.ChangePassword(ctx.Request().Context(), *data)
	})
}
