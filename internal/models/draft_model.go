package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Draft struct {
	ID               int64         `db:"id" json:"id"`
	Owner            int64         `db:"owner" json:"owner"`
	MediaType        string        `db:"media_type" json:"media_type"` // image, video
	MediaPath        string        `db:"media_path" json:"media_path"`
	Title            string        `db:"title" json:"title"`
	Caption          string        `db:"caption" json:"caption"`
	Hashtags         string        `db:"hashtags" json:"hashtags"`
	TargetInstagram  bool          `db:"target_instagram" json:"target_instagram"`
	TargetTiktok     bool          `db:"target_tiktok" json:"target_tiktok"`
	Status           string        `db:"status" json:"status"`
	Metadata         DraftMetadata `db:"metadata" json:"metadata"`
	DesiredPublishAt *time.Time    `db:"desired_publish_at" json:"desired_publish_at,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

const (
	DraftStatusDraft        = "draft"
	DraftStatusEditing      = "editing"
	DraftStatusCaptionReady = "caption_ready"
	DraftStatusScheduled    = "scheduled"
	DraftStatusPosted       = "posted"
	DraftStatusFailed       = "failed"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// DraftMetadata is the draft's jsonb sidecar. The edit pipeline fields are
// typed; any other keys written by external automation survive a
// read-modify-write cycle through Extra.
type DraftMetadata struct {
	EditPreset      string `json:"edit_preset,omitempty"`
	RenderPath      string `json:"render_path,omitempty"`
	EditCompletedAt string `json:"edit_completed_at,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (m DraftMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+3)
	for k, v := range m.Extra {
		out[k] = v
	}
	setString := func(key, value string) error {
		if value == "" {
			return nil
		}
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}
	if err := setString("edit_preset", m.EditPreset); err != nil {
		return nil, err
	}
	if err := setString("render_path", m.RenderPath); err != nil {
		return nil, err
	}
	if err := setString("edit_completed_at", m.EditCompletedAt); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (m *DraftMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	takeString := func(key string, dst *string) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(v, dst)
	}
	if err := takeString("edit_preset", &m.EditPreset); err != nil {
		return err
	}
	if err := takeString("render_path", &m.RenderPath); err != nil {
		return err
	}
	if err := takeString("edit_completed_at", &m.EditCompletedAt); err != nil {
		return err
	}
	if len(raw) > 0 {
		m.Extra = raw
	} else {
		m.Extra = nil
	}
	return nil
}

func (m DraftMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *DraftMetadata) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = DraftMetadata{}
		return nil
	case []byte:
		if len(v) == 0 {
			*m = DraftMetadata{}
			return nil
		}
		return json.Unmarshal(v, m)
	case string:
		if v == "" {
			*m = DraftMetadata{}
			return nil
		}
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata column type %T", src)
	}
}
