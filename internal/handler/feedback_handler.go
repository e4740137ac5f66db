package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/service"
	"github.com/quizpulse/quizpulse-api/internal/utils"
)

// FeedbackHandler exposes the results endpoint.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler creates a new handler instance.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register attaches the feedback endpoints.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Get("/results", h.getResults)
}

func (h *FeedbackHandler) getResults(c *fiber.Ctx) error {
	results, err := h.service.Results(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate feedback")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate feedback")
	}

	return utils.SendSuccess(c, "feedback generated", results)
}
