package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/common"
	"github.com/hxuan190/swap-router/internal/http/httputil"
)

// AdminAuth accepts requests carrying "Authorization: Bearer <token>". An
// empty token disables the guarded routes.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			httputil.AbortWithError(c, common.HTTPErrorForbidden("admin api disabled"))
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			httputil.AbortWithError(c, common.HTTPErrorUnauthorized("invalid admin token"))
			return
		}
		c.Next()
	}
}
