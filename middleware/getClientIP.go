package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller through gin's trusted proxy list, so
// X-Forwarded-For and X-Real-IP only count when the hop that sent them is
// trusted. Without a parseable remote address it falls back to RemoteAddr.
func getClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}
