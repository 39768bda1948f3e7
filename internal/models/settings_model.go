package models

import "time"

type Settings struct {
	Owner               int64     `db:"owner" json:"owner"`
	LowContentAlert     bool      `db:"low_content_alert" json:"low_content_alert"`
	LowContentThreshold int       `db:"low_content_threshold" json:"low_content_threshold"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

type Integrations struct {
	Owner              int64     `db:"owner" json:"owner"`
	InstagramConnected bool      `db:"instagram_connected" json:"instagram_connected"`
	TiktokConnected    bool      `db:"tiktok_connected" json:"tiktok_connected"`
	OpenAIConfigured   bool      `db:"openai_configured" json:"openai_configured"`
	VideoEditProvider  string    `db:"video_edit_provider" json:"video_edit_provider"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
