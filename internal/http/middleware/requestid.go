package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// RequestIDHeader is the header used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request ID.
	RequestIDLocalKey = "request_id"
	// requestIDAttr tags the request span so traces can be found by X-Request-ID.
	requestIDAttr = attribute.Key("http.request_id")
)

type requestIDKey struct{}

// RequestID ensures every request carries an ID. An incoming X-Request-ID is
// kept, otherwise a UUID is generated. The ID is echoed in the response
// header and made available three ways: Fiber locals (RequestIDLocalKey),
// the user context (RequestIDFromContext), and as an attribute on the
// active span when otelfiber runs first.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		ctx := c.UserContext()
		trace.SpanFromContext(ctx).SetAttributes(requestIDAttr.String(id))
		c.SetUserContext(context.WithValue(ctx, requestIDKey{}, id))

		return c.Next()
	}
}

// RequestIDFromContext returns the ID stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
