package credits

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phANTom2303/smart-india-hackathon-2025/internal/httpapi"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers carbon credit routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	credits := router.Group("/credits")
	{
		credits.GET("", h.list)
		credits.GET("/:id", h.get)
		credits.POST("/mint", h.mint)
		credits.POST("/:id/transfer", h.transfer)
		credits.POST("/:id/retire", h.retire)
	}
}

// list handles GET /api/credits
func (h *Handler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// get handles GET /api/credits/:id
func (h *Handler) get(c *gin.Context) {
	credit, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// mint handles POST /api/credits/mint
func (h *Handler) mint(c *gin.Context) {
	var req MintCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	credit, err := h.service.Mint(c.Request.Context(), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// transfer handles POST /api/credits/:id/transfer
func (h *Handler) transfer(c *gin.Context) {
	var req TransferCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	credit, err := h.service.Transfer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// retire handles POST /api/credits/:id/retire
func (h *Handler) retire(c *gin.Context) {
	credit, err := h.service.Retire(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}
