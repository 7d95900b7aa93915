package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/auth"
)

const requestIDKey = "requestID"

// Interceptors guard routes on the caller's sign-in state. On failure the
// request is aborted and the handler never runs.
type Interceptors struct {
	gate *auth.Gate
}

func NewInterceptors(gate *auth.Gate) *Interceptors {
	return &Interceptors{gate: gate}
}

// AuthRequired admits signed-in callers only.
func (i *Interceptors) AuthRequired(c *gin.Context) {
	if err := i.gate.RequireAuthenticated(sessionFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Next()
}

// AnonymousRequired admits callers that are not signed in.
func (i *Interceptors) AnonymousRequired(c *gin.Context) {
	if err := i.gate.RequireAnonymous(sessionFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Next()
}

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func RequestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

func Recovery(l logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error(c.Request.Context(), "panic recovered", "panic", recovered, "request_id", c.GetString(requestIDKey))
		abortWithError(c, common.ErrorInternal)
	})
}
