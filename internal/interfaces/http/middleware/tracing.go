package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns OpenTelemetry tracing middleware. otelgin creates a
// server span per request; afterwards the span is enriched with the
// request ID set by RequestID and the user ID set by AuthRequired.
// Spans are no-ops until a tracer provider is installed.
//
// Place this after RequestID so the request_id attribute is populated.
func Tracing(serviceName string) gin.HandlerFunc {
	base := otelgin.Middleware(serviceName)

	return func(c *gin.Context) {
		// otelgin runs the rest of the chain itself, so by the time
		// it returns the auth middleware has recorded the user ID.
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := c.GetString("request_id"); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if userID, ok := GetAuthUserID(c); ok {
			span.SetAttributes(attribute.String("user_id", userID.String()))
		}
	}
}
