package handler

import (
	"time"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	Username    string `json:"username"    validate:"required,min=3,max=50,username"`
	FullName    string `json:"fullName"    validate:"required,min=2,max=100"`
	Email       string `json:"email"       validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Password    string `json:"password"    validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type introspectRequest struct {
	Token string `json:"token" validate:"required"`
}

// --- Response types ---
// Transport-owned projections: the password hash and picture bytes have no
// representation here at all.

type accountResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber"`
	Role              string    `json:"role"`
	CreatedAt         time.Time `json:"createdAt"`
	HasProfilePicture bool      `json:"hasProfilePicture"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:                a.ID,
		Username:          a.Username,
		FullName:          a.FullName,
		Email:             a.Email,
		PhoneNumber:       a.PhoneNumber,
		Role:              string(a.Role),
		CreatedAt:         a.CreatedAt,
		HasProfilePicture: a.HasProfilePicture(),
	}
}

// loginUser is the compact projection embedded in the login response.
type loginUser struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	HasProfilePicture bool   `json:"hasProfilePicture"`
}

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	User        loginUser `json:"user"`
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	Sub      string `json:"sub,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Exp      int64  `json:"exp,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type accountListResponse struct {
	Items []accountResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Pages int               `json:"pages"`
}
