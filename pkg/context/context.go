package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const TurnIDKey = "turn_id"

// Every dispatcher turn carries its own ULID so repository and collaborator
// logs from the same utterance can be correlated.
func WithTurnID(ctx context.Context, turnID string) context.Context {
	return context.WithValue(ctx, TurnIDKey, turnID)
}

func GetTurnID(ctx context.Context) string {
	turnID, ok := ctx.Value(TurnIDKey).(string)
	if !ok || turnID == "" {
		return "unknown"
	}
	return turnID
}

// FromFiberCtx reuses the request ID of an HTTP request as the turn ID so
// reads over HTTP correlate the same way spoken turns do.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := context.Background()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithTurnID(ctx, requestID)
}
