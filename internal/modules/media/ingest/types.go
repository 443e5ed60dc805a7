package ingest

// uploadFormDTO carries the non-file multipart fields of an upload.
type uploadFormDTO struct {
	AIModel           string `form:"ai_model" binding:"required"`
	Prompt            string `form:"prompt" binding:"required"`
	ReferenceImageIDs string `form:"reference_image_ids"` // JSON array, optional
}

// publishDTO is the request body for the publish-state update.
type publishDTO struct {
	PublishStatus string `json:"publish_status" binding:"required"`
}
