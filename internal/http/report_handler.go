package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/sitetrack/internal/model"
)

func (h *Handler) dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	dash, err := h.reports.Dashboard(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) projectReport(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.reports.ProjectReport(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) exportReport(format model.ReportFormat) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		result, err := h.reports.Export(c.Request.Context(), p, id, format)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
		c.Data(http.StatusOK, result.ContentType, result.Content)
	}
}

func (h *Handler) listAuditLog(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}
	result, err := h.audit.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
