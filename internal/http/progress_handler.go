package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/service"
)

type progressRequest struct {
	ProjectID string  `json:"project_id"`
	Date      string  `json:"date" binding:"required"`
	Summary   string  `json:"summary" binding:"required"`
	PhotoRef  *string `json:"photo_ref"`
}

func (r progressRequest) input() (service.ProgressInput, string) {
	projectID, err := parseProjectID(r.ProjectID)
	if err != nil {
		return service.ProgressInput{}, "invalid project_id"
	}
	day, err := parseDate(r.Date)
	if err != nil {
		return service.ProgressInput{}, "invalid date"
	}
	return service.ProgressInput{ProjectID: projectID, Date: day, Summary: r.Summary, PhotoRef: r.PhotoRef}, ""
}

func (h *Handler) listProgress(c *gin.Context) {
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
	result, err := h.progress.List(c.Request.Context(), p, repository.ProgressFilter{ProjectID: projectID}, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	entry, err := h.progress.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) createProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	entry, err := h.progress.Create(c.Request.Context(), p, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) updateProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	entry, err := h.progress.Update(c.Request.Context(), p, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) deleteProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.progress.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
