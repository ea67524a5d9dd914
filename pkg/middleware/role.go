package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/configs"
)

// Role separates the artist from their audience. A visitor can browse the
// public surface; only the owner mutates the vault or runs maintenance.
type Role int

const (
	RoleVisitor Role = iota + 1
	RoleOwner
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleOwner {
		return "owner"
	}

	return "visitor"
}

type roleKey struct{}

// parseRole parses a header value; unknown values degrade to visitor.
func parseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), "owner") {
		return RoleOwner
	}

	return RoleVisitor
}

// RoleMiddleware resolves the request role and stores it in both the gin and
// request contexts. With auth disabled the vault runs locally for its owner,
// so every request is the owner's.
func RoleMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := RoleOwner
		if conf.Enabled {
			r = parseRole(c.GetHeader("X-Role"))
		}

		c.Set("role", r)

		ctx := context.WithValue(c.Request.Context(), roleKey{}, r)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetRole returns the current request role.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok2 := v.(Role); ok2 {
			return r
		}
	}

	if v := c.Request.Context().Value(roleKey{}); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	return RoleOwner
}

// RequireOwner rejects non-owner requests with 403.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: owner only"})
			return
		}

		c.Next()
	}
}
