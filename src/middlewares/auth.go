package middlewares

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenAuth gates mutating routes behind the shared API token. The secret is
// resolved once at startup and injected here instead of read from a global.
func TokenAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.Split(bearerToken, " ")
		if len(parts) != 2 || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			log.Printf("Rejected request with invalid token on %s\n", ctx.Request.URL.Path)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
	}
}
