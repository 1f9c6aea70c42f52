package historyHandler

import (
	historyService "JarvisGolang/internal/api/history/service"
	"JarvisGolang/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type HistoryHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	historyService historyService.IHistoryService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	hs historyService.IHistoryService,
) *HistoryHandler {
	return &HistoryHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		historyService: hs,
	}
}

func (h *HistoryHandler) Start(srv fiber.Router) {
	history := srv.Group("/history")

	history.Use(h.middleware.NewRateLimiter)

	history.Get("/", h.GetHistory)
}
