package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/service"
)

type laborerRequest struct {
	Name      string           `json:"name" binding:"required"`
	Role      string           `json:"role" binding:"required"`
	DailyRate *decimal.Decimal `json:"daily_rate" binding:"required"`
	ProjectID string           `json:"project_id"`
}

func (r laborerRequest) input() (service.LaborerInput, string) {
	projectID, err := parseProjectID(r.ProjectID)
	if err != nil {
		return service.LaborerInput{}, "invalid project_id"
	}
	return service.LaborerInput{
		Name:      r.Name,
		Role:      model.LaborerRole(r.Role),
		DailyRate: *r.DailyRate,
		ProjectID: projectID,
	}, ""
}

func (h *Handler) listLaborers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}
	projectID, ok := queryUUID(c, "project_id")
	if !ok {
		return
	}
	result, err := h.laborers.List(c.Request.Context(), p, repository.LaborerFilter{ProjectID: projectID}, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getLaborer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.laborers.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) createLaborer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req laborerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	laborer, err := h.laborers.Create(c.Request.Context(), p, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, laborer)
}

func (h *Handler) updateLaborer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req laborerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	laborer, err := h.laborers.Update(c.Request.Context(), p, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, laborer)
}

func (h *Handler) deleteLaborer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.laborers.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) laborerAttendance(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}
	result, err := h.laborers.Attendance(c.Request.Context(), p, id, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) checkIn(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := h.attendance.CheckIn(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
