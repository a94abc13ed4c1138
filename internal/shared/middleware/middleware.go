package middleware

import (
	"net/http"
	"strings"

	"streakconnect/internal/shared/config"
	"streakconnect/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by the auth middleware.
const (
	CtxMemberID    = "member_id"
	CtxMemberRole  = "member_role"
	CtxDisplayName = "display_name"
	CtxConsented   = "consented"
)

// JWTAuth creates a JWT authentication middleware
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header is required", nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil)
			c.Abort()
			return
		}

		claims, err := parseAccessToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(CtxMemberID, claims["member_id"])
		c.Set(CtxMemberRole, claims["role"])
		c.Set(CtxDisplayName, claims["display_name"])
		c.Set(CtxConsented, claims["consented"])

		c.Next()
	}
}

func parseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RequireRole middleware checks if the member has the required role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberRole, exists := c.Get(CtxMemberRole)
		if !exists {
			response.Error(c, http.StatusUnauthorized, "member role not found in context", nil)
			c.Abort()
			return
		}

		if memberRole.(string) != requiredRole {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}

// RequireConsent blocks members who have not accepted the privacy policy.
// The consent flag is carried in the access token, so a freshly consenting
// member has to refresh their token pair before the flag flips here.
func RequireConsent() gin.HandlerFunc {
	return func(c *gin.Context) {
		consented, exists := c.Get(CtxConsented)
		if !exists {
			response.Error(c, http.StatusForbidden, "privacy consent required", nil)
			c.Abort()
			return
		}
		if ok, isBool := consented.(bool); !isBool || !ok {
			response.Error(c, http.StatusForbidden, "privacy consent required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth validates a JWT token if present but doesn't require it
func OptionalAuth() gin.HandlerFunc {
	return OptionalAuthWithConfig(config.Load())
}

func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := parseAccessToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CtxMemberID, claims["member_id"])
		c.Set(CtxMemberRole, claims["role"])
		c.Set(CtxDisplayName, claims["display_name"])
		c.Set(CtxConsented, claims["consented"])

		c.Next()
	}
}

// MemberID returns the authenticated member's ID from the context.
func MemberID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxMemberID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
