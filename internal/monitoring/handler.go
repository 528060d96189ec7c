package monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/auth"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/httpapi"
	"github.com/phANTom2303/smart-india-hackathon-2025/internal/users"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers monitoring update routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	updates := router.Group("/monitoring-updates")
	{
		updates.GET("", h.list)
		updates.POST("", h.create)
		updates.POST("/:id/accept", h.accept)
		updates.POST("/:id/reject", h.reject)
	}
}

// list handles GET /api/monitoring-updates
func (h *Handler) list(c *gin.Context) {
	updates, err := h.service.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updates)
}

// create handles POST /api/monitoring-updates.
// Multipart fields: image (file), project, submittedBy, evidenceType,
// dataPayload (JSON string, optional).
func (h *Handler) create(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": `Image is required (multipart field "image")`})
		return
	}
	if fileHeader.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image exceeds the 15 MB upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read uploaded image"})
		return
	}
	defer file.Close()

	// submittedBy falls back to the session user, then the placeholder id
	submittedBy := c.PostForm("submittedBy")
	if submittedBy == "" {
		submittedBy = auth.UserIDOr(c, users.PlaceholderUserID)
	}

	req := IngestRequest{
		ProjectID:    c.PostForm("project"),
		SubmittedBy:  submittedBy,
		EvidenceType: c.PostForm("evidenceType"),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		FileSize:     fileHeader.Size,
		File:         file,
		DataPayload:  c.PostForm("dataPayload"),
	}

	update, err := h.service.Ingest(c.Request.Context(), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, update)
}

// accept handles POST /api/monitoring-updates/:id/accept
func (h *Handler) accept(c *gin.Context) {
	update, err := h.service.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

// reject handles POST /api/monitoring-updates/:id/reject
func (h *Handler) reject(c *gin.Context) {
	update, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, update)
}
