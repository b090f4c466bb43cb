// Package session holds the portal's Token Store: the current session token and the identity of
// the user it belongs to, persisted in a pluggable Storage.
package session

// Identity is the signed-in user as known by the portal.
type Identity struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// Session is created on successful authentication and destroyed on logout.
// Expiry is not tracked: the API rejecting the token is the source of truth.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

func (s Session) Valid() bool {
	return s.Token != ""
}
