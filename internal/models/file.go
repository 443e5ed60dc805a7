package models

// Asset kind values, classified from the upload MIME type prefix.
const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// Publish state values. Only published assets appear in the public catalog.
const (
	PublishStatusPublished   = "published"
	PublishStatusUnpublished = "unpublished"
)

// FileModel is one ingested media asset. FilePath/ThumbnailPath hold the
// resolved object-store URLs; ObjectKey/ThumbnailKey hold the bucket-relative
// keys so deletion does not have to parse URLs back apart.
//
// Invariant: a row is only ever persisted after both blobs were written, so
// ThumbnailPath is always populated on queryable rows.
type FileModel struct {
	Base
	FileName          string      `json:"file_name"           gorm:"not null"`
	FilePath          string      `json:"file_path"           gorm:"not null"`
	ThumbnailPath     string      `json:"thumbnail_path"      gorm:"not null"`
	ObjectKey         string      `json:"-"                   gorm:"not null"`
	ThumbnailKey      string      `json:"-"                   gorm:"not null"`
	FileSize          int64       `json:"file_size"`
	FileFormat        string      `json:"file_format"`
	FileType          string      `json:"file_type"           gorm:"index;not null"`
	AIModel           string      `json:"ai_model"            gorm:"index"`
	Prompt            string      `json:"prompt"              gorm:"type:longtext"`
	ReferenceImageIDs StringArray `json:"reference_image_ids" gorm:"type:longtext"`
	UserID            string      `json:"user_id"             gorm:"index"`
	PublishStatus     string      `json:"publish_status"      gorm:"index;default:unpublished;not null"`
	Duration          *float64    `json:"duration,omitempty"`
	Resolution        string      `json:"resolution,omitempty"`
}

func (FileModel) TableName() string { return "files" }
