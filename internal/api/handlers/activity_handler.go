package handlers

import (
	"draftweaver/internal/repository"
	"draftweaver/internal/service"
	"github.com/gofiber/fiber/v2"
)

// ActivityHandler serves the dashboard feeds: recent events and upcoming
// scheduled posts.
type ActivityHandler struct {
	er repository.EventRepository
	ss service.ScheduleService
}

func NewActivityHandler(er repository.EventRepository, ss service.ScheduleService) *ActivityHandler {
	return &ActivityHandler{er: er, ss: ss}
}

func (h *ActivityHandler) ListEvents(c *fiber.Ctx) error {
	owner := GetUserID(c)
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	events, err := h.er.ListByOwner(c.Context(), owner, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list events",
		})
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

func (h *ActivityHandler) UpcomingPosts(c *fiber.Ctx) error {
	owner := GetUserID(c)

	posts, err := h.ss.ListUpcoming(c.Context(), owner)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list upcoming posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
