package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueueEditRender persists a simulated render as a delayed asynq task. The
// task survives process restarts, unlike an in-memory timer.
func EnqueueEditRender(asynqClient *asynq.Client, payload EditRenderPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeEditRender, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	log.Printf("Edit render scheduled: %+v", payload)
	return nil
}
