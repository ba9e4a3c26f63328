package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/metrics"
	"github.com/SextoAndar/sexto-andar-auth/internal/api/middleware"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	accountService ports.AccountService
	tokenTTL       time.Duration
}

func NewAuthHandler(authService ports.AuthService, accountService ports.AccountService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, accountService: accountService, tokenTTL: tokenTTL}
}

// RegisterUser creates a new USER account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register/user [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	return h.register(c, domain.RoleUser)
}

// RegisterPropertyOwner creates a new PROPERTY_OWNER account.
//
// @Summary      Register a new property owner
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register/property-owner [post]
func (h *AuthHandler) RegisterPropertyOwner(c echo.Context) error {
	return h.register(c, domain.RolePropertyOwner)
}

func (h *AuthHandler) register(c echo.Context, role domain.Role) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.Register(c.Request().Context(), role, ports.RegisterInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()
	return c.JSON(http.StatusCreated, newAccountResponse(account))
}

// Login authenticates credentials and establishes a session.
//
// The token is returned in the body and set as an HttpOnly SameSite=Lax
// cookie so browser clients never expose it to scripts.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		if errors.Is(err, domain.ErrLoginThrottled) {
			metrics.LoginThrottledTotal.Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()

	c.SetCookie(sessionCookie(token, int(h.tokenTTL.Seconds())))
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: loginUser{
			ID:                account.ID,
			Username:          account.Username,
			Role:              string(account.Role),
			HasProfilePicture: account.HasProfilePicture(),
		},
	})
}

// Logout clears the session cookie. Tokens are stateless, so this only
// removes the client-side copy: a captured token stays verifiable until it
// expires. Safe to call without a session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// Me returns the caller's account projection.
//
// @Summary      Get the current authenticated account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.GetByID(c.Request().Context(), identity.ID)
	if err != nil {
		// A valid token for a deleted account: the session is gone, not the
		// resource.
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}
	return c.JSON(http.StatusOK, newAccountResponse(account))
}

// Introspect validates a token for service-to-service checks. It always
// answers 200: an invalid or expired token is an inactive one, not an error.
//
// @Summary      Introspect a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      introspectRequest  true  "Token"
// @Success      200   {object}  introspectResponse
// @Router       /auth/introspect [post]
func (h *AuthHandler) Introspect(c echo.Context) error {
	var req introspectRequest
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusOK, introspectResponse{Active: false, Reason: "malformed"})
	}

	result := h.authService.Introspect(req.Token)
	if !result.Active {
		return c.JSON(http.StatusOK, introspectResponse{Active: false, Reason: result.Reason})
	}
	return c.JSON(http.StatusOK, introspectResponse{
		Active:   true,
		Sub:      result.Subject,
		Username: result.Username,
		Role:     string(result.Role),
		Exp:      result.ExpiresAt.Unix(),
	})
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
