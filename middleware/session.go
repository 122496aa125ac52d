package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session"
	CartSessionKey    = "cart_session_id"

	cartCookieMaxAge = 7 * 24 * 60 * 60
)

// CartSessionMiddleware pins a cart to a browser session via a UUID cookie.
// The cart is scoped to this cookie only; it is not shared across devices.
func CartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CartSessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(CartSessionCookie, sessionID, cartCookieMaxAge, "/", "", false, true)
		}

		c.Set(CartSessionKey, sessionID)
		c.Next()
	}
}

// CartSessionID returns the session id set by CartSessionMiddleware.
func CartSessionID(c *gin.Context) string {
	return c.GetString(CartSessionKey)
}
