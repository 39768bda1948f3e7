package models

import (
	"encoding/json"
	"time"
)

// Event is an append-only audit record. The core never updates or deletes
// rows in this table.
type Event struct {
	ID        int64           `db:"id" json:"id"`
	Owner     int64           `db:"owner" json:"owner"`
	Kind      string          `db:"kind" json:"kind"`
	RefID     int64           `db:"ref_id" json:"ref_id,omitempty"`
	Payload   json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

const (
	EventEditRequest   = "edit.request"
	EventEditReady     = "edit.ready"
	EventCaptionReq    = "caption.request"
	EventCaptionReady  = "caption.ready"
	EventPostScheduled = "post.scheduled"
	EventPosted        = "posted"
	EventStyleBuilt    = "style.built"
)
