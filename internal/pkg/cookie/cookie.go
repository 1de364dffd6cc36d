package cookie

import (
	"github.com/gin-gonic/gin"
)

// The storefront UI sends credentials with every request; the session cookie is set by the
// account service on the same domain.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
