package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
	"github.com/nurpe/sitetrack/internal/service"
)

type expenseRequest struct {
	ProjectID string           `json:"project_id"`
	Date      string           `json:"date" binding:"required"`
	Category  string           `json:"category" binding:"required"`
	Amount    *decimal.Decimal `json:"amount" binding:"required"`
	Notes     string           `json:"notes"`
}

func (r expenseRequest) input() (service.ExpenseInput, string) {
	projectID, err := parseProjectID(r.ProjectID)
	if err != nil {
		return service.ExpenseInput{}, "invalid project_id"
	}
	day, err := parseDate(r.Date)
	if err != nil {
		return service.ExpenseInput{}, "invalid date"
	}
	return service.ExpenseInput{
		ProjectID: projectID,
		Date:      day,
		Category:  model.ExpenseCategory(strings.ToLower(strings.TrimSpace(r.Category))),
		Amount:    *r.Amount,
		Notes:     r.Notes,
	}, ""
}

func (h *Handler) listExpenses(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	params, ok := listParams(c)
	if !ok {
		return
	}
	var filter repository.ExpenseFilter
	if filter.ProjectID, ok = queryUUID(c, "project_id"); !ok {
		return
	}
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category := model.ExpenseCategory(strings.ToLower(raw))
		filter.Category = &category
	}
	result, err := h.expenses.List(c.Request.Context(), p, filter, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	expense, err := h.expenses.Get(c.Request.Context(), p, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) createExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	expense, err := h.expenses.Create(c.Request.Context(), p, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) updateExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in, msg := req.input()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	expense, err := h.expenses.Update(c.Request.Context(), p, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *Handler) deleteExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), p, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
