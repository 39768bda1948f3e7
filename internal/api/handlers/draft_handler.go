package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"draftweaver/internal/service"
	"draftweaver/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type DraftHandler struct {
	s service.DraftService
}

func NewDraftHandler(service service.DraftService) *DraftHandler {
	return &DraftHandler{s: service}
}

func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	owner := GetUserID(c)
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	dc := transfer.DraftCreation{
		Title:            c.FormValue("title"),
		Caption:          c.FormValue("caption"),
		Hashtags:         c.FormValue("hashtags"),
		TargetInstagram:  c.FormValue("target_instagram") == "true",
		TargetTiktok:     c.FormValue("target_tiktok") == "true",
		DesiredPublishAt: c.FormValue("desired_publish_at"),
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	// One draft per uploaded file, mirroring the upload queue in the UI.
	var draftIDs []int64
	for _, file := range files {
		draftID, err := h.s.CreateDraft(c.Context(), owner, &dc, file)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		draftIDs = append(draftIDs, draftID)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ids": draftIDs,
	})
}

func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	owner := GetUserID(c)
	draftID := c.QueryInt("id", 0)

	if draftID != 0 {
		draft, err := h.s.DraftInfo(c.Context(), int64(draftID), owner)
		if err != nil {
			if errors.Is(err, service.ErrDraftNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Draft not found",
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get draft",
			})
		}

		return c.Status(fiber.StatusOK).JSON(draft)
	}

	drafts, err := h.s.List(c.Context(), owner)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list drafts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(drafts)
}

func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	owner := GetUserID(c)

	var du transfer.DraftUpdate
	if err := c.BodyParser(&du); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if du.ID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id is required",
		})
	}

	if err := h.s.Update(c.Context(), owner, &du); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Draft not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to update draft",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *DraftHandler) RemoveDraft(c *fiber.Ctx) error {
	owner := GetUserID(c)
	draftID, _ := strconv.Atoi(c.Query("id", "0"))

	err := h.s.Remove(c.Context(), owner, int64(draftID))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Draft not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove draft",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
