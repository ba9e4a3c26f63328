package domain

import "errors"

// Credential and session errors.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so callers
	// cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrLoginThrottled     = errors.New("too many failed login attempts")
)

// Token verification errors.
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
)

// Account errors.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// Admin lifecycle errors. A target that exists but is not an ADMIN is
// reported as not found: the delete-admin operation only resolves admins.
var (
	ErrSelfDeletion = errors.New("cannot delete your own admin account")
	ErrLastAdmin    = errors.New("cannot delete the last admin account")
)

// Profile picture errors.
var (
	ErrNoProfilePicture       = errors.New("account has no profile picture")
	ErrEmptyPicture           = errors.New("profile picture file is empty")
	ErrPictureTooLarge        = errors.New("profile picture exceeds the size limit")
	ErrUnsupportedPictureType = errors.New("unsupported profile picture content type")
)
