// file: middleware/admin_required.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cashplayzz-web/logger"
)

// AdminLoginPath is where signed-out admins are sent.
const AdminLoginPath = "/admin/login"

// AdminRequired is a middleware that checks for an admin token. Browser
// page requests are redirected to the admin login; websocket upgrades and
// other non-page requests get a 401.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)

		logger.Debug.Printf("AdminRequired Middleware - hasAdmin=%v", sess.HasAdmin())

		if !sess.HasAdmin() {
			logger.Warn.Println("AdminRequired Middleware - Unauthorized attempt blocked")
			reject(c, AdminLoginPath)
			return
		}

		logger.Debug.Println("AdminRequired Middleware - Passed, continuing request")
		c.Next()
	}
}

func wantsHTML(c *gin.Context) bool {
	return !c.IsWebsocket() && strings.Contains(c.GetHeader("Accept"), "text/html")
}
