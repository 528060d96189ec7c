package organizations

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/httpapi"
)

// Handler handles HTTP requests for organizations
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers organization routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	orgs := router.Group("/organization")
	{
		orgs.GET("", h.list)
		orgs.POST("", h.register)
		orgs.POST("/:id/approve", h.approve)
		orgs.POST("/:id/reject", h.reject)
	}
}

// list handles GET /api/organization
func (h *Handler) list(c *gin.Context) {
	orgs, err := h.service.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// register handles POST /api/organization
func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	org, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// approve handles POST /api/organization/:id/approve
func (h *Handler) approve(c *gin.Context) {
	org, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// reject handles POST /api/organization/:id/reject
func (h *Handler) reject(c *gin.Context) {
	org, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, org)
}
