package catalog

import (
	"github.com/aigallery/core/internal/middleware"
	"github.com/aigallery/core/internal/pkg/pagination"
	"github.com/aigallery/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the read side: the public catalog and the operator's
// dashboard queries.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc, cacheMW gin.HandlerFunc) {
	files := rg.Group("/files")
	files.GET("", cacheMW, h.listPublished)
	files.GET("/:id", cacheMW, h.getPublished)

	admin := rg.Group("/admin", adminMW)
	admin.GET("/files", h.listForAdmin)
	admin.GET("/models", h.models)
	admin.GET("/stats", h.stats)
}

// GET /files returns published assets only.
func (h *Handler) listPublished(c *gin.Context) {
	files, pag, err := h.svc.ListPublished(pagination.FromContext(c), filterFromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"files":       files,
		"total":       pag.Total,
		"hasNextPage": pag.HasNextPage,
	})
}

// GET /files/:id returns the asset plus its resolved reference images.
func (h *Handler) getPublished(c *gin.Context) {
	file, err := h.svc.GetPublished(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	refs, err := h.svc.ReferenceImages(file)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"file": file, "reference_images": refs})
}

// GET /admin/files [admin] lists own uploads in every publish state.
func (h *Handler) listForAdmin(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	files, pag, err := h.svc.ListForAdmin(admin.ID, pagination.FromContext(c), filterFromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"files":       files,
		"total":       pag.Total,
		"hasNextPage": pag.HasNextPage,
	})
}

// GET /admin/models [admin]
func (h *Handler) models(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	infos, err := h.svc.ModelsForAdmin(admin.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, infos)
}

// GET /admin/stats [admin]
func (h *Handler) stats(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	stats, err := h.svc.StatsForAdmin(admin.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func filterFromContext(c *gin.Context) Filter {
	return Filter{
		FileType: c.DefaultQuery("file_type", "all"),
		AIModel:  c.Query("ai_model"),
		Search:   c.Query("search"),
	}
}
