package ingest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aigallery/core/internal/models"
	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/aigallery/core/internal/pkg/objectstore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	originalPrefix  = "original/"
	thumbnailPrefix = "thumbnails/"

	// DownloadURLTTL is deliberately short: the signed URL feeds an
	// immediate redirect, not a client-side cache.
	DownloadURLTTL = 60 * time.Second
)

// Variant selects which blob of an asset a download URL points at.
const (
	VariantOriginal  = "original"
	VariantThumbnail = "thumbnail"
)

// UploadInput is one asset handed to the pipeline, already buffered.
type UploadInput struct {
	Payload           []byte
	MimeType          string
	OriginalName      string
	SizeBytes         int64
	AIModel           string
	Prompt            string
	OwnerID           string
	ReferenceImageIDs []string
}

// Service is the media ingestion pipeline: validate, thumbnail, write both
// blobs, persist the row. All dependencies are injected; there is no
// process-wide client state.
type Service struct {
	db       *gorm.DB
	store    objectstore.Store
	log      *zap.Logger
	maxBytes int64

	ensureOnce sync.Once
}

func NewService(db *gorm.DB, store objectstore.Store, log *zap.Logger, maxBytes int64) *Service {
	return &Service{db: db, store: store, log: log, maxBytes: maxBytes}
}

// MaxBytes returns the configured upload ceiling.
func (s *Service) MaxBytes() int64 { return s.maxBytes }

// Ingest runs the full pipeline. Failure after the original blob was
// written leaves it in place: orphaned blobs are a documented operational
// cleanup concern, not a consistency violation worth a rollback here.
func (s *Service) Ingest(ctx context.Context, in UploadInput) (*models.FileModel, error) {
	if in.SizeBytes > s.maxBytes || int64(len(in.Payload)) > s.maxBytes {
		return nil, errs.New(errs.KindPayloadTooLarge,
			fmt.Sprintf("File size exceeds %dMB limit", s.maxBytes>>20))
	}

	fileType, err := classifyMimeType(in.MimeType)
	if err != nil {
		return nil, err
	}

	// Object names derive from a fresh id plus the original extension,
	// never from the caller-supplied filename.
	id := uuid.NewString()
	ext := safeExtension(in.OriginalName)
	objectKey := originalPrefix + id + ext
	thumbKey := thumbnailPrefix + id + "_thumb.jpg"

	s.ensureBucket(ctx)

	if err := s.store.Put(ctx, objectKey, in.Payload, in.MimeType); err != nil {
		return nil, errs.Wrap(errs.KindStorageWriteFailed, "Failed to upload file", err)
	}

	var thumb []byte
	if fileType == models.FileTypeImage {
		thumb, err = imageThumbnail(in.Payload)
		if err != nil {
			return nil, errs.Wrap(errs.KindUnsupportedMediaType, "Unreadable image payload", err)
		}
	} else {
		thumb, err = videoThumbnail()
		if err != nil {
			return nil, errs.Wrap(errs.KindStorageWriteFailed, "Failed to build video thumbnail", err)
		}
	}

	if err := s.store.Put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
		// The original stays behind; see note above.
		return nil, errs.Wrap(errs.KindStorageWriteFailed, "Failed to upload thumbnail", err)
	}

	asset := models.FileModel{
		Base:              models.Base{ID: id},
		FileName:          in.OriginalName,
		FilePath:          s.store.PublicURL(objectKey),
		ThumbnailPath:     s.store.PublicURL(thumbKey),
		ObjectKey:         objectKey,
		ThumbnailKey:      thumbKey,
		FileSize:          in.SizeBytes,
		FileFormat:        strings.TrimPrefix(ext, "."),
		FileType:          fileType,
		AIModel:           in.AIModel,
		Prompt:            in.Prompt,
		ReferenceImageIDs: in.ReferenceImageIDs,
		UserID:            in.OwnerID,
		PublishStatus:     models.PublishStatusUnpublished,
	}

	if fileType == models.FileTypeVideo {
		duration, resolution := extractVideoMeta(in.Payload)
		asset.Duration = duration
		asset.Resolution = resolution
	}

	if err := s.db.Create(&asset).Error; err != nil {
		return nil, errs.Wrap(errs.KindMetadataWriteFailed, "Failed to save file metadata", err)
	}
	return &asset, nil
}

// IssueDownloadURL produces a time-limited signed URL for one blob of an
// existing asset.
func (s *Service) IssueDownloadURL(ctx context.Context, assetID, variant string) (string, error) {
	var asset models.FileModel
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.New(errs.KindNotFound, "File not found")
		}
		return "", err
	}

	key := asset.ObjectKey
	if variant == VariantThumbnail {
		key = asset.ThumbnailKey
	}

	url, err := s.store.SignedURL(ctx, key, DownloadURLTTL)
	if err != nil {
		return "", errs.Wrap(errs.KindNotFound, "File not found in storage", err)
	}
	return url, nil
}

// SetPublishState flips the visibility flag on an asset.
func (s *Service) SetPublishState(assetID, state string) (*models.FileModel, error) {
	if state != models.PublishStatusPublished && state != models.PublishStatusUnpublished {
		return nil, errs.New(errs.KindInvalidState,
			`Invalid publish_status. Must be "published" or "unpublished"`)
	}

	var asset models.FileModel
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "File not found")
		}
		return nil, err
	}

	if err := s.db.Model(&asset).Update("publish_status", state).Error; err != nil {
		return nil, err
	}
	asset.PublishStatus = state
	return &asset, nil
}

// Delete removes both blobs (best-effort) and then the row. Blob removal
// failure does not stop the row deletion, mirroring the upload-side
// tolerance for orphans.
func (s *Service) Delete(ctx context.Context, assetID string) error {
	var asset models.FileModel
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.KindNotFound, "File not found")
		}
		return err
	}

	if err := s.store.Delete(ctx, asset.ObjectKey, asset.ThumbnailKey); err != nil {
		s.log.Warn("blob removal incomplete, deleting row anyway",
			zap.String("asset_id", assetID), zap.Error(err))
	}

	return s.db.Delete(&models.FileModel{}, "id = ?", assetID).Error
}

// ensureBucket runs the one-time, best-effort bucket check. Racing
// creators are fine; "already exists" counts as success downstream.
func (s *Service) ensureBucket(ctx context.Context) {
	s.ensureOnce.Do(func() {
		if err := s.store.EnsureBucket(ctx); err != nil {
			s.log.Warn("ensure bucket failed", zap.Error(err))
		}
	})
}

// extractVideoMeta would report duration and resolution. Probing container
// formats is out of scope, so both are unknown; callers tolerate absent
// values.
func extractVideoMeta(payload []byte) (*float64, string) {
	return nil, ""
}

func classifyMimeType(mimeType string) (string, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.FileTypeImage, nil
	case strings.HasPrefix(mimeType, "video/"):
		return models.FileTypeVideo, nil
	default:
		return "", errs.New(errs.KindUnsupportedMediaType, "Unsupported file type")
	}
}

// safeExtension keeps the lower-cased original extension when it looks like
// one, falling back to a neutral suffix.
func safeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ".dat"
	}
	return ext
}
