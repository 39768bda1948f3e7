package job

import (
	"context"
	"log/slog"

	"draftweaver/internal/service"
)

type SweepJob struct {
	ss service.ScheduleService
}

func NewSweepJob(ss service.ScheduleService) *SweepJob {
	return &SweepJob{
		ss: ss,
	}
}

// Sweep publishes due scheduled posts. Driven by cron in-process; the
// process-scheduled-posts webhook runs the same code for external timers.
func (j *SweepJob) Sweep() {
	ctx := context.Background()

	processed, err := j.ss.ProcessDue(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if processed > 0 {
		slog.Info("processed scheduled posts", "count", processed)
	}
}
