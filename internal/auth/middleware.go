package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"property-portal/internal/cache"
	"property-portal/internal/models"
)

const claimsContextKey = "auth_claims"

// Middleware はリクエストの Bearer トークンを検証する
func Middleware(tokens *TokenService, c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		if c.IsTokenBlacklisted(ctx.Request.Context(), token) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ctx.Set(claimsContextKey, claims)
		ctx.Next()
	}
}

// RequireSuperAdmin は super_admin 権限のみ許可する
func RequireSuperAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := ClaimsFrom(ctx)
		if claims == nil || claims.Role != models.AdminRoleSuperAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super admin required"})
			return
		}
		ctx.Next()
	}
}

// ClaimsFrom はコンテキストから認証済み Claims を取り出す
func ClaimsFrom(ctx *gin.Context) *Claims {
	v, ok := ctx.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// BearerToken はリクエストの Bearer トークン本体を返す
func BearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
