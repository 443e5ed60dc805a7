package middleware

import (
	"strings"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/modules/auth/identity"
	"github.com/aigallery/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextKeyAdmin = "admin"
	ContextKeyUser  = "user"
)

// AdminAuth enforces operator authentication. A missing bearer responds 401;
// a present but unresolvable one responds 403.
func AdminAuth(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "No authorization token provided")
			return
		}
		admin := resolver.ResolveAdmin(token)
		if admin == nil {
			response.Forbidden(c, "Invalid or expired token")
			return
		}
		c.Set(ContextKeyAdmin, admin)
		c.Next()
	}
}

// OptionalUser sets the user session if a valid login token is present, but
// never blocks the request.
func OptionalUser(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolver.ResolveUser(extractToken(c)); user != nil {
			c.Set(ContextKeyUser, user)
		}
		c.Next()
	}
}

// CurrentAdmin extracts the authenticated admin from context.
func CurrentAdmin(c *gin.Context) *models.AdminModel {
	v, _ := c.Get(ContextKeyAdmin)
	admin, _ := v.(*models.AdminModel)
	return admin
}

// CurrentUser extracts the authenticated user session from context.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	user, _ := v.(*models.UserModel)
	return user
}

// IsAuthenticated returns true if the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentAdmin(c) != nil || CurrentUser(c) != nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
