package queue

import (
	"draftweaver/internal/service"
)

type Queue struct {
	es service.EditService
}

func NewQueue(es service.EditService) *Queue {
	return &Queue{
		es: es,
	}
}

const TaskTypeEditRender = "edit:render"

type EditRenderPayload struct {
	DraftID int64  `json:"draft_id"`
	Preset  string `json:"preset,omitempty"`
}
