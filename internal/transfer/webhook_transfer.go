package transfer

type GenerateCaptionRequest struct {
	DraftID int64 `json:"draftId"`
}

type RequestEditRequest struct {
	DraftID    int64  `json:"draftId"`
	Preset     string `json:"preset,omitempty"`
	RenderPath string `json:"renderPath,omitempty"`
}

type SchedulePostRequest struct {
	DraftID      int64    `json:"draftId"`
	Platforms    []string `json:"platforms"`
	ScheduledFor string   `json:"scheduledFor"`
}

type MarkPostedRequest struct {
	ScheduledPostID int64  `json:"scheduledPostId"`
	ExternalPostID  string `json:"externalPostId,omitempty"`
}

type AnalyzeStyleRequest struct {
	Source string `json:"source,omitempty"`
}

type StyleBuildRequest struct {
	Samples string `json:"samples"`
}
