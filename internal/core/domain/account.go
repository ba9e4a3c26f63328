package domain

import "time"

// Role classifies an account. The set is closed: no other values are ever
// persisted or accepted in a token.
type Role string

const (
	RoleUser          Role = "USER"
	RolePropertyOwner Role = "PROPERTY_OWNER"
	RoleAdmin         Role = "ADMIN"
)

// ParseRole converts a raw string into a Role, reporting whether the value
// belongs to the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RolePropertyOwner, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Account is the identity record owned by the credential store.
// PasswordHash and the profile picture bytes never leave the service:
// transport projections are built by the handlers.
type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Email        string    `json:"email" bson:"email"`
	PhoneNumber  string    `json:"phone_number" bson:"phone_number"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`

	ProfilePicture     []byte `json:"-" bson:"profile_picture,omitempty"`
	ProfilePictureType string `json:"-" bson:"profile_picture_type,omitempty"`
}

// IsAdmin reports whether the account holds the ADMIN role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasProfilePicture reports whether a picture is stored for the account.
func (a *Account) HasProfilePicture() bool {
	return len(a.ProfilePicture) > 0
}

// Identity is the caller resolved from a verified token. It carries claims
// only, no database state, so it can be stale for up to the token TTL after
// the underlying account changes or is deleted. That window is an accepted
// property of stateless tokens, not something the guard re-checks.
type Identity struct {
	ID       string
	Username string
	Role     Role
}
