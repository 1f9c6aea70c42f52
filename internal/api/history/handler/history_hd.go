package historyHandler

import (
	"errors"
	"time"

	contextPkg "JarvisGolang/pkg/context"
	"JarvisGolang/pkg/log"
	"JarvisGolang/pkg/response"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *HistoryHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Fetching interaction history")

	res, err := h.historyService.GetHistory(c)
	if err != nil {
		var respErr *response.Error
		if errors.As(err, &respErr) {
			return ctx.Status(respErr.Code).JSON(fiber.Map{
				"error": respErr.Err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	select {
	case <-c.Done():
		return ctx.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
			"error": "request timeout",
		})
	default:
		return ctx.Status(fiber.StatusOK).JSON(res)
	}
}
