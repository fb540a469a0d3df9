package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/sitetrack/internal/service"
)

type projectRequest struct {
	Name      string `json:"name" binding:"required"`
	Location  string `json:"location" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func (r projectRequest) input() (service.ProjectInput, string) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.ProjectInput{}, "invalid start_date"
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return service.ProjectInput{}, "invalid end_date"
	}
	return service.ProjectInput{Name: r.Name, Location: r.Location, StartDate: start, EndDate: end}, ""
}

func (h *Handler) listProjects(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}
	result, err := h.projects.List(c.Request.Context(), p, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) createProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	project, err := h.projects.Create(c.Request.Context(), p, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) updateProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	project, err := h.projects.Update(c.Request.Context(), p, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) deleteProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
