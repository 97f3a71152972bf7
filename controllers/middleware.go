package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID stamps every request/response pair with a correlation id
// (X-Request-ID), generating one when the caller didn't supply it. This
// id has no relation to the spec's opaque client/game/card ids — it is a
// transport-layer correlation token for log tracing.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
