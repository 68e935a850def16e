package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/quizweb/internal/common"
	"github.com/dmitrijs2005/quizweb/internal/server/http/flash"
)

const LoginPath = "/"

// RequireLogin redirects anonymous visitors to the login page with a
// message.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if StateFrom(c).Authenticated() {
			c.Next()
			return
		}
		_ = c.Error(common.ErrUnauthenticated)
		flash.Error(c, "Please log in first.")
		_ = flash.Save(c)
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}
