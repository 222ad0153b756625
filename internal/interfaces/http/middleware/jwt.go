package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/refdata/backend/internal/infrastructure/auth"
	"github.com/refdata/backend/internal/infrastructure/logger"
	"github.com/refdata/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys and header constants for authentication
const (
	CallerKey     = "caller"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTConfig holds configuration for the authentication middleware
type JWTConfig struct {
	JWTService *auth.JWTService
	// SkipPaths bypass authentication entirely (health, metrics)
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig returns the default authentication configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTConfig {
	return JWTConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/metrics"},
	}
}

// JWTAuth creates authentication middleware with default configuration
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthWithConfig verifies the bearer token on every request outside
// the skip list and stores the resulting Caller in the gin context.
func JWTAuthWithConfig(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, nil, "missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, nil, "invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "token validation failed")
			return
		}

		caller, err := claims.ToCaller()
		if err != nil {
			abortUnauthorized(c, cfg, err, "malformed token claims")
			return
		}

		c.Set(CallerKey, caller)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, claims.UserID)
		if claims.CompanyID != "" {
			ctx, _ = logger.WithCompanyID(ctx, log, claims.CompanyID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", message),
			zap.Error(err),
		)
	}

	response := dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required")
	if err == auth.ErrExpiredToken {
		response = dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Token has expired")
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, response)
}

// GetCaller retrieves the authenticated caller from the gin context.
// The zero Caller is returned on unauthenticated routes.
func GetCaller(c *gin.Context) shared.Caller {
	if value, exists := c.Get(CallerKey); exists {
		if caller, ok := value.(shared.Caller); ok {
			return caller
		}
	}
	return shared.Caller{}
}
