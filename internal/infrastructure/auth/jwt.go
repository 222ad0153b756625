package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingCompanyID = errors.New("missing company_id in claims")
)

// Claims represents the custom JWT claims issued by the auth service.
// Superadmin tokens may omit company_id.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string   `json:"user_id"`
	CompanyID    string   `json:"company_id,omitempty"`
	IsSuperadmin bool     `json:"is_superadmin,omitempty"`
	Permissions  []string `json:"permissions,omitempty"`
}

// JWTService verifies tokens issued by the auth service. This service
// never issues tokens itself.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT verification service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// ValidateToken validates a token string and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if claims.CompanyID == "" && !claims.IsSuperadmin {
		return nil, ErrMissingCompanyID
	}

	return claims, nil
}

// ToCaller converts validated claims into the caller identity the
// domain layer scopes queries with.
func (c *Claims) ToCaller() (shared.Caller, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return shared.Caller{}, ErrInvalidClaims
	}

	caller := shared.Caller{
		UserID:       userID,
		IsSuperadmin: c.IsSuperadmin,
		Permissions:  c.Permissions,
	}

	if c.CompanyID != "" {
		companyID, err := uuid.Parse(c.CompanyID)
		if err != nil {
			return shared.Caller{}, ErrInvalidClaims
		}
		caller.CompanyID = companyID
	}

	return caller, nil
}

// HasPermission checks if the claims contain a specific permission
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
