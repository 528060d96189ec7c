package reports

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

// RegisterRoutes registers verification report routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/report")
	{
		reports.GET("", h.list)
		reports.POST("", h.create)
		reports.GET("/:id", h.get)
		reports.PUT("/:id", h.update)
		reports.POST("/:id/submit", h.submit)
		reports.POST("/:id/approve", h.approve)
		reports.POST("/:id/reject", h.reject)
		reports.GET("/:id/export/pdf", h.exportPDF)
		reports.GET("/:id/export/xlsx", h.exportXLSX)
		reports.GET("/monitoring-range/:projectId/:start/:end", h.monitoringRange)
	}
}

// list handles GET /api/report
func (h *Handler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// create handles POST /api/report
func (h *Handler) create(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	report, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// get handles GET /api/report/:id
func (h *Handler) get(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// update handles PUT /api/report/:id
func (h *Handler) update(c *gin.Context) {
	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	report, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// submit handles POST /api/report/:id/submit
func (h *Handler) submit(c *gin.Context) {
	report, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// approve handles POST /api/report/:id/approve
func (h *Handler) approve(c *gin.Context) {
	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	report, err := h.service.Approve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// reject handles POST /api/report/:id/reject
func (h *Handler) reject(c *gin.Context) {
	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	report, err := h.service.Reject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// monitoringRange handles GET /api/report/monitoring-range/:projectId/:start/:end
func (h *Handler) monitoringRange(c *gin.Context) {
	records, err := h.service.MonitoringInRange(c.Request.Context(),
		c.Param("projectId"), c.Param("start"), c.Param("end"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, RangeResult{Records: records, Count: len(records)})
}

// exportPDF handles GET /api/report/:id/export/pdf
func (h *Handler) exportPDF(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}

	data, err := RenderPDF(report)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename(report, "pdf")+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// exportXLSX handles GET /api/report/:id/export/xlsx
func (h *Handler) exportXLSX(c *gin.Context) {
	report, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}

	data, err := RenderXLSX(report)
	if err != nil {
		httpapi.RespondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename(report, "xlsx")+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
