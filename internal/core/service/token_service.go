package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
)

const tokenIssuer = "sexto-andar-auth"

// DefaultTokenTTL matches the session length of the public API.
const DefaultTokenTTL = 30 * time.Minute

// Claims is the signed payload of a session token. Subject carries the
// account id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identity maps verified claims to a caller identity.
func (c *Claims) Identity() domain.Identity {
	role, _ := domain.ParseRole(c.Role)
	return domain.Identity{
		ID:       c.Subject,
		Username: c.Username,
		Role:     role,
	}
}

// TokenService signs and verifies HS256 session tokens with a single
// process-wide secret. The secret is fixed at construction; rotating it
// means a new instance and invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the account with the configured TTL.
func (s *TokenService) Issue(account *domain.Account) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: account.Username,
		Role:     string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims unmodified.
// Failures are classified as domain.ErrTokenExpired, domain.ErrTokenSignature,
// or domain.ErrTokenMalformed. The exp claim is mandatory: a correctly signed
// token without one is malformed, never an unbounded session. No account
// lookup is performed: a token stays valid until expiry even if the account
// it names was deleted after issuance.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	if _, ok := domain.ParseRole(claims.Role); !ok {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
