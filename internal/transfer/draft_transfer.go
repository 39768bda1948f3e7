package transfer

type DraftCreation struct {
	Title            string
	Caption          string
	Hashtags         string
	TargetInstagram  bool
	TargetTiktok     bool
	DesiredPublishAt string
}

type DraftUpdate struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Caption          string `json:"caption"`
	Hashtags         string `json:"hashtags"`
	TargetInstagram  bool   `json:"target_instagram"`
	TargetTiktok     bool   `json:"target_tiktok"`
	DesiredPublishAt string `json:"desired_publish_at,omitempty"`
}

type SettingsUpdate struct {
	LowContentAlert     bool `json:"low_content_alert"`
	LowContentThreshold int  `json:"low_content_threshold"`
}
