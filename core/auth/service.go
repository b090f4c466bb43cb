// Package auth signs users in and out of the remote API and keeps the session store in sync.
package auth

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/api"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

// API endpoints
const (
	loginPath          = "/auth/login"
	registerPath       = "/auth/register"
	logoutPath         = "/auth/logout"
	changePasswordPath = "/auth/change-password"
	verifyEmailPath    = "/auth/verify-email"
	forgotPasswordPath = "/auth/forgot-password"
	resetPasswordPath  = "/auth/reset-password"
)

type Service struct {
	client   *api.Client
	validate *validator.Validate
	logger   core.Logger
}

func NewService(client *api.Client, validate *validator.Validate, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Service{client: client, validate: validate, logger: logger}
}

func storeFrom(ctx context.Context) (*session.Store, error) {
	store, ok := session.FromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	return store, nil
}

// Login authenticates with the API and stores the resulting session.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	if err := creds.Validate(s.validate); err != nil {
		return session.Session{}, err
	}
	store, err := storeFrom(ctx)
	if err != nil {
		return session.Session{}, err
	}

	var resp authResponse
	if err := s.client.Post(ctx, loginPath, creds, &resp); err != nil {
		return session.Session{}, errors.Wrap(err, "login")
	}
	sess, err := resp.session()
	if err != nil {
		return session.Session{}, err
	}
	if err := store.Set(ctx, sess); err != nil {
		return session.Session{}, err
	}

	s.logger.Info("signed in", "userId", sess.User.UserID, "role", sess.User.Role.String())
	return sess, nil
}

// Register creates an account. The user is signed in when the API answers with a token.
func (s *Service) Register(ctx context.Context, reg Registration) (Result, error) {
	if err := reg.Validate(s.validate); err != nil {
		return Result{}, err
	}
	store, err := storeFrom(ctx)
	if err != nil {
		return Result{}, err
	}

	var resp authResponse
	if err := s.client.Post(ctx, registerPath, reg, &resp); err != nil {
		return Result{}, errors.Wrap(err, "register")
	}
	if resp.token() == "" {
		return Result{Message: resp.Message}, nil
	}

	sess, err := resp.session()
	if err != nil {
		return Result{}, err
	}
	if err := store.Set(ctx, sess); err != nil {
		return Result{}, err
	}
	return Result{Session: sess, Message: resp.Message}, nil
}

// Logout ends the session on the API, then clears the store.
// The store is left untouched when the API call fails; see ForceLogout.
func (s *Service) Logout(ctx context.Context) error {
	store, err := storeFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Post(ctx, logoutPath, struct{}{}, nil); err != nil {
		return errors.Wrap(err, "logout")
	}
	return store.ClearAll(ctx)
}

// ForceLogout calls Logout and clears the store whatever the outcome.
// The Logout error, if any, is returned for reporting only.
func (s *Service) ForceLogout(ctx context.Context) error {
	err := s.Logout(ctx)
	if err == nil {
		return nil
	}

	s.logger.Warn("logout failed; clearing the session anyway", "error", err)
	if store, ok := session.FromContext(ctx); ok {
		if cErr := store.ClearAll(ctx); cErr != nil {
			s.logger.Error("clearing session", "error", cErr)
		}
	}
	return err
}

func (s *Service) ChangePassword(ctx context.Context, change PasswordChange) (string, error) {
	if err := change.Validate(s.validate); err != nil {
		return "", err
	}
	return s.post(ctx, changePasswordPath, change)
}

func (s *Service) VerifyEmail(ctx context.Context, v EmailVerification) (string, error) {
	if err := v.Validate(s.validate); err != nil {
		return "", err
	}
	return s.post(ctx, verifyEmailPath, v)
}

func (s *Service) ForgotPassword(ctx context.Context, f ForgotPassword) (string, error) {
	if err := f.Validate(s.validate); err != nil {
		return "", err
	}
	return s.post(ctx, forgotPasswordPath, f)
}

func (s *Service) ResetPassword(ctx context.Context, p PasswordReset) (string, error) {
	if err := p.Validate(s.validate); err != nil {
		return "", err
	}
	return s.post(ctx, resetPasswordPath, p)
}

// post sends a form that only gets a confirmation message back.
func (s *Service) post(ctx context.Context, path string, in interface{}) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, path, in, &resp); err != nil {
		return "", errors.Wrap(err, path)
	}
	return resp.Message, nil
}
