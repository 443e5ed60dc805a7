package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aigallery/core/internal/middleware"
	"github.com/aigallery/core/internal/pkg/errs"
	"github.com/aigallery/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the write side of the asset lifecycle. Everything here
// except the download redirect requires a resolved admin.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/files")

	g.POST("/upload", adminMW, h.upload)
	g.PATCH("/:id/publish", adminMW, h.setPublishState)
	g.DELETE("/:id", adminMW, h.delete)
	g.GET("/:id/download", h.download)
}

// POST /files/upload [admin]
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}

	// First ceiling check at the transport boundary, before buffering.
	if fileHeader.Size > h.svc.MaxBytes() {
		response.Error(c, errs.New(errs.KindPayloadTooLarge,
			fmt.Sprintf("File size exceeds %dMB limit", h.svc.MaxBytes()>>20)))
		return
	}

	var dto uploadFormDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Missing required fields: ai_model, prompt")
		return
	}

	var refIDs []string
	if dto.ReferenceImageIDs != "" {
		if err := json.Unmarshal([]byte(dto.ReferenceImageIDs), &refIDs); err != nil {
			response.BadRequest(c, "reference_image_ids must be a JSON array")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()
	payload, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	// A client disconnect mid-upload must not cancel in-flight storage
	// writes; shed the request context's cancellation before the pipeline.
	ctx := context.WithoutCancel(c.Request.Context())
	asset, err := h.svc.Ingest(ctx, UploadInput{
		Payload:           payload,
		MimeType:          fileHeader.Header.Get("Content-Type"),
		OriginalName:      fileHeader.Filename,
		SizeBytes:         fileHeader.Size,
		AIModel:           dto.AIModel,
		Prompt:            dto.Prompt,
		OwnerID:           middleware.CurrentAdmin(c).ID,
		ReferenceImageIDs: refIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, asset)
}

// PATCH /files/:id/publish [admin]
func (h *Handler) setPublishState(c *gin.Context) {
	var dto publishDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "publish_status is required")
		return
	}

	asset, err := h.svc.SetPublishState(c.Param("id"), dto.PublishStatus)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, asset)
}

// DELETE /files/:id [admin]
func (h *Handler) delete(c *gin.Context) {
	// Same cancellation shedding as upload: blob removal runs to completion
	// once started.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "File deleted successfully")
}

// GET /files/:id/download?type=original|thumbnail
// Redirects to a signed URL meant for immediate consumption.
func (h *Handler) download(c *gin.Context) {
	variant := c.DefaultQuery("type", VariantOriginal)
	if variant != VariantOriginal && variant != VariantThumbnail {
		variant = VariantOriginal
	}

	url, err := h.svc.IssueDownloadURL(c.Request.Context(), c.Param("id"), variant)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
