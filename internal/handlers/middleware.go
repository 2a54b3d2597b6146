package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/google/uuid"
)

const (
	requestIDHeader  = "X-Request-ID"
	adminTokenHeader = "X-Admin-Token"

	requestIDKey = "requestID"
	identityKey  = "identityUserID"
)

// RequestLogger tags every request with an id and logs it once it is done.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		logger.Infof("%s %s %d %s request_id=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID)
	}
}

// IdentityMiddleware reads the user id asserted by the upstream session
// provider. The header is only consulted when identity is required.
func (h *HTTPHandler) IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.opts.RequireIdentity {
			c.Next()
			return
		}

		raw := c.GetHeader(h.opts.IdentityHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing identity"})
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid identity"})
			return
		}
		c.Set(identityKey, userID)
		c.Next()
	}
}

// authorize aborts with 403 when identity is enforced and the caller is not
// userID.
func (h *HTTPHandler) authorize(c *gin.Context, userID int64) bool {
	if !h.opts.RequireIdentity {
		return true
	}
	if asserted, ok := c.Get(identityKey); ok && asserted.(int64) == userID {
		return true
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	return false
}

// AdminMiddleware guards catalog administration. With no token configured
// the admin routes are closed.
func (h *HTTPHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(adminTokenHeader)
		if h.opts.AdminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.opts.AdminToken)) != 1 {
			logger.Warningf("Rejected admin request %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}
