package models

import "time"

type ScheduledPost struct {
	ID             int64     `db:"id" json:"id"`
	DraftID        int64     `db:"draft_id" json:"draft_id"`
	Platform       string    `db:"platform" json:"platform"` // instagram, tiktok
	ScheduledFor   time.Time `db:"scheduled_for" json:"scheduled_for"`
	Status         string    `db:"status" json:"status"` // scheduled, posted
	ExternalPostID string    `db:"external_post_id" json:"external_post_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ScheduledPostStatusScheduled = "scheduled"
	ScheduledPostStatusPosted    = "posted"
)

const (
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
)
