package auth

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

var (
	ErrInvalidResponse = errors.New("unexpected response from the authentication API")
	ErrNoSession       = errors.New("no session in context")
	errSignupRole      = errors.New("only students and instructors can sign up")
)

// Credentials are used to sign in.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Email = core.CleanString(c.Email, true)
	return validate.Struct(c)
}

// Registration contains what is needed to create an account.
type Registration struct {
	FullName        string       `json:"fullName" form:"fullName" validate:"required,max=100"`
	Email           string       `json:"email" form:"email" validate:"required,email"`
	Password        string       `json:"password" form:"password" validate:"required,min=8,password"`
	ConfirmPassword string       `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
	Role            session.Role `json:"role" form:"role" validate:"required"`
}

func (r *Registration) Validate(validate *validator.Validate) error {
	r.FullName = core.CleanString(r.FullName)
	r.Email = core.CleanString(r.Email, true)

	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Role != session.RoleStudent && r.Role != session.RoleInstructor {
		return core.NewValidationError(errSignupRole, core.FieldError{Field: "role", Error: errSignupRole.Error()})
	}
	return nil
}

// PasswordChange is submitted by a signed-in user.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" form:"newPassword" validate:"required,min=8,password,nefield=CurrentPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword" form:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

func (p *PasswordChange) Validate(validate *validator.Validate) error {
	return validate.Struct(p)
}

type EmailVerification struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	Token string `json:"token" form:"token" validate:"required"`
}

func (v *EmailVerification) Validate(validate *validator.Validate) error {
	v.Email = core.CleanString(v.Email, true)
	v.Token = core.CleanString(v.Token)
	return validate.Struct(v)
}

type ForgotPassword struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

func (f *ForgotPassword) Validate(validate *validator.Validate) error {
	f.Email = core.CleanString(f.Email, true)
	return validate.Struct(f)
}

type PasswordReset struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Token           string `json:"token" form:"token" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=8,password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func (p *PasswordReset) Validate(validate *validator.Validate) error {
	p.Email = core.CleanString(p.Email, true)
	p.Token = core.CleanString(p.Token)
	return validate.Struct(p)
}

// Result of a registration: a session when the API signs the user in right away, a message
// (e.g. "check your inbox") otherwise.
type Result struct {
	Session session.Session
	Message string
}

func (r Result) SignedIn() bool {
	return r.Session.Valid()
}

// authResponse is what the auth endpoints answer with.
type authResponse struct {
	Token       string            `json:"token"`
	AccessToken string            `json:"accessToken"`
	User        *session.Identity `json:"user"`
	Message     string            `json:"message"`
}

func (r authResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// session builds the session described by the response, falling back on the token's claims when
// the response carries no user.
func (r authResponse) session() (session.Session, error) {
	token := r.token()
	if token == "" {
		return session.Session{}, ErrInvalidResponse
	}
	if r.User != nil && r.User.UserID != "" {
		return session.Session{Token: token, User: *r.User}, nil
	}

	user, err := session.IdentityFromToken(token)
	if err != nil {
		return session.Session{}, errors.Wrap(ErrInvalidResponse, err.Error())
	}
	return session.Session{Token: token, User: user}, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
