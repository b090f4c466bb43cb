package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// claim names the API may use, in order of preference
var (
	userIDClaims = []string{"userId", "sub", "nameid", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"}
	roleClaims   = []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
	emailClaims  = []string{"email", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"}
	nameClaims   = []string{"fullName", "name", "unique_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
)

// IdentityFromToken decodes the identity embedded in a JWT session token.
//
// The signature is NOT verified: the portal only needs to know who it is talking for, the API
// verifies the token on every request.
func IdentityFromToken(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, errors.Wrap(err, "parsing token claims")
	}

	id := Identity{
		UserID:   firstClaim(claims, userIDClaims),
		Email:    firstClaim(claims, emailClaims),
		FullName: firstClaim(claims, nameClaims),
	}
	if raw := firstClaim(claims, roleClaims); raw != "" {
		id.Role, _ = ParseRole(raw)
	}
	if id.UserID == "" {
		return Identity{}, errors.New("token carries no user id")
	}
	return id, nil
}

func firstClaim(claims jwt.MapClaims, names []string) string {
	for _, name := range names {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		case []interface{}: // multi-valued claims, e.g. several roles
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
