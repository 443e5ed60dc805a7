package catalog

// Filter narrows a catalog listing.
type Filter struct {
	FileType string // "image", "video", or "" / "all"
	AIModel  string
	Search   string // matched against ai_model and prompt
}

// ModelInfo summarizes one generating model's footprint in the library.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // image | video | all
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalFiles     int64 `json:"total_files"`
	PublishedFiles int64 `json:"published_files"`
	ImageFiles     int64 `json:"image_files"`
	VideoFiles     int64 `json:"video_files"`
}
