package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	config "draftweaver/configs"
	"draftweaver/internal/queue"
	"draftweaver/internal/service"
	"draftweaver/internal/transfer"
	"draftweaver/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// WebhookHandler hosts the signed automation endpoints that drive the draft
// lifecycle. Signatures are verified against the raw request body before any
// JSON parsing.
type WebhookHandler struct {
	cfg         config.Config
	cs          service.CaptionService
	es          service.EditService
	ss          service.ScheduleService
	sts         service.StyleService
	AsynqClient *asynq.Client
}

func NewWebhookHandler(
	cfg config.Config,
	cs service.CaptionService,
	es service.EditService,
	ss service.ScheduleService,
	sts service.StyleService,
	asynqClient *asynq.Client) *WebhookHandler {
	return &WebhookHandler{
		cfg:         cfg,
		cs:          cs,
		es:          es,
		ss:          ss,
		sts:         sts,
		AsynqClient: asynqClient,
	}
}

func (h *WebhookHandler) verify(c *fiber.Ctx) bool {
	return utils.VerifySignature(c.Body(), c.Get("x-signature"), h.cfg.AutomationSecret)
}

func invalidSignature(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid signature",
	})
}

func (h *WebhookHandler) GenerateCaption(c *fiber.Ctx) error {
	if !h.verify(c) {
		return invalidSignature(c)
	}

	var req transfer.GenerateCaptionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.DraftID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "draftId is required",
		})
	}

	fallback, err := h.cs.GenerateCaption(c.Context(), req.DraftID)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Draft not found",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update draft",
		})
	}

	if fallback {
		return c.JSON(fiber.Map{"ok": true, "fallback": true})
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *WebhookHandler) RequestEdit(c *fiber.Ctx) error {
	if !h.verify(c) {
		return invalidSignature(c)
	}

	var req transfer.RequestEditRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.DraftID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "draftId is required",
		})
	}

	delay, err := h.es.RequestEdit(c.Context(), req.DraftID, req.Preset, req.RenderPath)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Draft not found",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update draft",
		})
	}

	if delay >= 0 {
		err = queue.EnqueueEditRender(h.AsynqClient, queue.EditRenderPayload{
			DraftID: req.DraftID,
			Preset:  req.Preset,
		}, delay)
		if err != nil {
			slog.Error(err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error scheduling edit",
			})
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (h *WebhookHandler) SchedulePost(c *fiber.Ctx) error {
	if !h.verify(c) {
		return invalidSignature(c)
	}

	var req transfer.SchedulePostRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.DraftID == 0 || len(req.Platforms) == 0 || req.ScheduledFor == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "draftId, platforms, and scheduledFor are required",
		})
	}

	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduledFor must be an RFC 3339 timestamp",
		})
	}

	err = h.ss.Schedule(c.Context(), req.DraftID, req.Platforms, scheduledFor)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Draft not found",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create scheduled posts",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (h *WebhookHandler) MarkPosted(c *fiber.Ctx) error {
	if !h.verify(c) {
		return invalidSignature(c)
	}

	var req transfer.MarkPostedRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.ScheduledPostID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduledPostId is required",
		})
	}

	err := h.ss.MarkPosted(c.Context(), req.ScheduledPostID, req.ExternalPostID)
	if err != nil {
		if errors.Is(err, service.ErrScheduledPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Scheduled post not found",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update scheduled post",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// ProcessScheduledPosts is triggered by an external timer and carries no
// signed body.
func (h *WebhookHandler) ProcessScheduledPosts(c *fiber.Ctx) error {
	processed, err := h.ss.ProcessDue(c.Context())
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch scheduled posts",
		})
	}

	return c.JSON(fiber.Map{
		"ok":        true,
		"processed": processed,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *WebhookHandler) AnalyzeStyle(c *fiber.Ctx) error {
	if !h.verify(c) {
		return invalidSignature(c)
	}

	userID, ok := h.bearerUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req transfer.AnalyzeStyleRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.sts.AnalyzeStyle(c.Context(), userID, req.Source); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update style profile",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (h *WebhookHandler) bearerUserID(c *fiber.Ctx) (int64, bool) {
	authHeader := c.Get("authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return 0, false
	}

	claims, err := utils.ValidateToken(h.cfg.SecretKey, authHeader[7:])
	if err != nil {
		return 0, false
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}
