package identity

import (
	"github.com/aigallery/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the sign-in surface.
type Handler struct {
	svc      *Service
	resolver *Resolver
}

func NewHandler(svc *Service, resolver *Resolver) *Handler {
	return &Handler{svc: svc, resolver: resolver}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")

	g.POST("/google", h.googleLogin)
	g.POST("/admin/login", h.adminLogin)
	g.POST("/validate", h.validate)
	g.POST("/admin/create", h.createAdmin)
}

// POST /auth/google
func (h *Handler) googleLogin(c *gin.Context) {
	var dto googleLoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Google token is required")
		return
	}

	result, err := h.svc.GoogleLogin(c.Request.Context(), dto.GoogleToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	kind := KindUser
	if result.Admin != nil {
		kind = KindAdmin
	}
	response.OK(c, gin.H{
		"user":  result.User,
		"token": result.Token,
		"type":  kind,
		"admin": result.Admin,
	})
}

// POST /auth/admin/login
func (h *Handler) adminLogin(c *gin.Context) {
	var dto adminLoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.svc.AdminLogin(dto.Username, dto.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"admin": result.Admin,
		"token": result.Token,
	})
}

// POST /auth/validate classifies an existing bearer token without rotating it.
func (h *Handler) validate(c *gin.Context) {
	var dto validateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Token is required")
		return
	}

	id := h.resolver.Resolve(dto.Token)
	switch id.Kind {
	case KindUser:
		response.OK(c, gin.H{"type": id.Kind, "user": id.User})
	case KindAdmin:
		response.OK(c, gin.H{"type": id.Kind, "admin": id.Admin})
	default:
		response.Unauthorized(c, "Invalid or expired token")
	}
}

// POST /auth/admin/create bootstraps an operator account.
func (h *Handler) createAdmin(c *gin.Context) {
	var dto createAdminDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	admin, err := h.svc.CreateAdmin(dto.Username, dto.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"admin": admin})
}
