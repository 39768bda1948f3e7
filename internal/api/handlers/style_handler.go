package handlers

import (
	"errors"
	"log/slog"

	"draftweaver/internal/service"
	"draftweaver/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type StyleHandler struct {
	s service.StyleService
}

func NewStyleHandler(service service.StyleService) *StyleHandler {
	return &StyleHandler{s: service}
}

func (h *StyleHandler) BuildStyle(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.StyleBuildRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	profile, err := h.s.BuildFromSamples(c.Context(), userID, req.Samples)
	if err != nil {
		if errors.Is(err, service.ErrSamplesTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least 50 characters of sample content",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze style",
		})
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"profile": profile,
	})
}
