package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

func (h *Handler) listAttendance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}

	var filter repository.AttendanceFilter
	if filter.ProjectID, ok = queryUUID(c, "project_id"); !ok {
		return
	}
	if filter.LaborerID, ok = queryUUID(c, "laborer_id"); !ok {
		return
	}
	if filter.Date, ok = queryDate(c, "date"); !ok {
		return
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.AttendanceStatus(strings.ToLower(raw))
		filter.Status = &status
	}

	result, err := h.attendance.List(c.Request.Context(), p, filter, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
