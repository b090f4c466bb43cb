package session

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Role is the only authorization axis of the portal.
//
// The API encodes roles as small integers (0=Admin, 1=Instructor, 2=Student) but some endpoints
// return the symbolic name instead. Both are decoded into a Role as soon as they are received, so
// the rest of the portal compares roles with plain ==.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleInstructor
	RoleStudent
)

var ErrUnknownRole = errors.New("unknown role")

var roleNames = map[Role]string{
	RoleAdmin:      "Admin",
	RoleInstructor: "Instructor",
	RoleStudent:    "Student",
}

// wire codes used by the API
var roleCodes = map[Role]int{
	RoleAdmin:      0,
	RoleInstructor: 1,
	RoleStudent:    2,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the API's integer encoding of the role, or -1 for RoleUnknown.
func (r Role) Code() int {
	if code, ok := roleCodes[r]; ok {
		return code
	}
	return -1
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole decodes any representation of a role the API may send: the symbolic name (any case)
// or its integer code, as a string.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		return RoleFromCode(code)
	}
	for role, name := range roleNames {
		if strings.EqualFold(name, s) {
			return role, nil
		}
	}
	return RoleUnknown, errors.Wrapf(ErrUnknownRole, "%q", s)
}

// RoleFromCode decodes the API's integer encoding.
func RoleFromCode(code int) (Role, error) {
	for role, c := range roleCodes {
		if c == code {
			return role, nil
		}
	}
	return RoleUnknown, errors.Wrapf(ErrUnknownRole, "code %d", code)
}

// MarshalJSON encodes the role with the API's integer code.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(r.Code())), nil
}

// UnmarshalJSON accepts a number, a numeric string or a role name.
// Unrecognized values decode to RoleUnknown rather than failing the whole payload.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var role Role
	switch v := raw.(type) {
	case float64:
		if v == math.Trunc(v) {
			role, _ = RoleFromCode(int(v))
		}
	case string:
		role, _ = ParseRole(v)
	}
	*r = role
	return nil
}

// UnmarshalParam lets echo bind a role from form and query values.
func (r *Role) UnmarshalParam(param string) error {
	role, err := ParseRole(param)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
