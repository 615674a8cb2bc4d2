package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SpanContextKey = "span_context"
	RequestIDKey   = "request_id"
)

// GetContextFromGinContext extracts the context with span from Gin context
func GetContextFromGinContext(c *gin.Context) context.Context {
	if spanCtx, exists := c.Get(SpanContextKey); exists {
		if ctx, ok := spanCtx.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

// GetRequestIDFromGinContext extracts request ID from Gin context
func GetRequestIDFromGinContext(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// RequestLogger returns base tagged with the request id, when there is one.
func RequestLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	if id := GetRequestIDFromGinContext(c); id != "" {
		return base.With(zap.String("request_id", id))
	}
	return base
}
