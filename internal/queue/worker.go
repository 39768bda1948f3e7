package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"draftweaver/internal/service"
	"github.com/hibiken/asynq"
)

func (q *Queue) HandleEditRenderTask(ctx context.Context, task *asynq.Task) error {
	var payload EditRenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	err := q.es.CompleteEdit(ctx, payload.DraftID, payload.Preset)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			// Draft was deleted while the render was pending. Nothing to do.
			log.Printf("Edit render skipped, draft %d no longer exists", payload.DraftID)
			return nil
		}
		return err
	}

	return nil
}
