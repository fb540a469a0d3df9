package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/sitetrack/internal/config"
	"github.com/nurpe/sitetrack/internal/testutil"
)

type client struct {
	c      *qt.C
	router *gin.Engine
	token  string
}

func newClient(c *qt.C) *client {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment: "test",
		Location:    time.UTC,
		Auth:        config.AuthConfig{AccessSecret: "test-secret", AccessTTL: time.Hour},
		Pagination:  config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
	}
	application := New(cfg, testutil.NewDB(c.TB), zerolog.Nop())
	return &client{c: c, router: application.Router()}
}

func (cl *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		cl.c.Assert(json.NewEncoder(&payload).Encode(body), qt.IsNil)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	rec := httptest.NewRecorder()
	cl.router.ServeHTTP(rec, req)
	return rec
}

func (cl *client) decode(rec *httptest.ResponseRecorder, into interface{}) {
	cl.c.Assert(json.Unmarshal(rec.Body.Bytes(), into), qt.IsNil, qt.Commentf("body: %s", rec.Body.String()))
}

// signIn registers the account and keeps its bearer token for later calls.
func (cl *client) signIn(email string) {
	rec := cl.do(http.MethodPost, "/auth/register", map[string]string{
		"email": email, "name": "Site Manager", "password": "correct-horse",
	})
	cl.c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body.String()))

	rec = cl.do(http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": "correct-horse",
	})
	cl.c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	cl.decode(rec, &session)
	cl.c.Assert(session.AccessToken, qt.Not(qt.Equals), "")
	cl.token = session.AccessToken

	rec = cl.do(http.MethodGet, "/auth/me", nil)
	cl.c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func (cl *client) createProject(name string) string {
	rec := cl.do(http.MethodPost, "/projects", map[string]string{
		"name": name, "location": "Kampala", "start_date": "2020-01-01", "end_date": "2099-12-31",
	})
	cl.c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body.String()))
	var project struct {
		ID string `json:"id"`
	}
	cl.decode(rec, &project)
	return project.ID
}

func (cl *client) createLaborer(projectID string) string {
	rec := cl.do(http.MethodPost, "/laborers", map[string]interface{}{
		"name": "Okello", "role": "mason", "daily_rate": "80.00", "project_id": projectID,
	})
	cl.c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body.String()))
	var laborer struct {
		ID string `json:"id"`
	}
	cl.decode(rec, &laborer)
	return laborer.ID
}

func TestHealth(t *testing.T) {
	c := qt.New(t)
	cl := newClient(c)

	rec := cl.do(http.MethodGet, "/health", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := qt.New(t)
	cl := newClient(c)

	for _, path := range []string{"/projects", "/laborers", "/attendance", "/dashboard", "/audit-log"} {
		rec := cl.do(http.MethodGet, path, nil)
		c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized, qt.Commentf("path: %s", path))
	}

	cl.token = "not-a-token"
	rec := cl.do(http.MethodGet, "/projects", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
}

func TestAuthErrors(t *testing.T) {
	c := qt.New(t)
	cl := newClient(c)
	cl.signIn("pm@example.com")

	rec := cl.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "pm@example.com", "password": "correct-horse",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusConflict)

	rec = cl.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "pm@example.com", "password": "wrong-password",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)

	rec = cl.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "short@example.com", "password": "short",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}

func TestProjectWorkflow(t *testing.T) {
	c := qt.New(t)
	cl := newClient(c)
	cl.signIn("pm@example.com")

	projectID := cl.createProject("Riverside")
	laborerID := cl.createLaborer(projectID)

	rec := cl.do(http.MethodPost, "/laborers/"+laborerID+"/checkin", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK, qt.Commentf("body: %s", rec.Body.String()))
	rec = cl.do(http.MethodPost, "/laborers/"+laborerID+"/checkin", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = cl.do(http.MethodGet, "/attendance?laborer_id="+laborerID, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var attendance struct {
		Total int64 `json:"total"`
	}
	cl.decode(rec, &attendance)
	c.Assert(attendance.Total, qt.Equals, int64(1))

	rec = cl.do(http.MethodPost, "/expenses", map[string]interface{}{
		"project_id": projectID, "date": "2024-03-01", "category": "Materials", "amount": "120.50",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body.String()))

	rec = cl.do(http.MethodPost, "/progress", map[string]interface{}{
		"project_id": projectID, "date": "2024-03-01", "summary": "Site cleared",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body.String()))

	rec = cl.do(http.MethodGet, "/projects/"+projectID+"/report", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var report struct {
		LaborCost   string `json:"total_labor_cost"`
		ExpenseCost string `json:"total_expenses"`
	}
	cl.decode(rec, &report)
	c.Assert(report.LaborCost, qt.Equals, "80")
	c.Assert(report.ExpenseCost, qt.Equals, "120.5")

	rec = cl.do(http.MethodGet, "/projects/"+projectID+"/report/pdf", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Header().Get("Content-Type"), qt.Equals, "application/pdf")
	c.Assert(rec.Header().Get("Content-Disposition"), qt.Contains, "project_report_Riverside_")
	c.Assert(strings.HasPrefix(rec.Body.String(), "%PDF"), qt.IsTrue)

	rec = cl.do(http.MethodGet, "/projects/"+projectID+"/report/xlsx", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(strings.HasPrefix(rec.Body.String(), "PK"), qt.IsTrue)

	rec = cl.do(http.MethodGet, "/dashboard", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	rec = cl.do(http.MethodGet, "/audit-log", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var audit struct {
		Total int64 `json:"total"`
	}
	cl.decode(rec, &audit)
	c.Assert(audit.Total > 0, qt.IsTrue)

	rec = cl.do(http.MethodDelete, "/projects/"+projectID, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusNoContent)
	rec = cl.do(http.MethodGet, "/laborers/"+laborerID, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)
}

func TestCrossAccountAccess(t *testing.T) {
	c := qt.New(t)
	owner := newClient(c)
	owner.signIn("owner@example.com")
	projectID := owner.createProject("Riverside")
	laborerID := owner.createLaborer(projectID)

	intruder := &client{c: c, router: owner.router}
	intruder.signIn("intruder@example.com")

	rec := intruder.do(http.MethodGet, "/projects/"+projectID, nil)
	c.Assert(rec.Code, qt.Equals, http.StatusNotFound)

	rec = intruder.do(http.MethodPost, "/laborers/"+laborerID+"/checkin", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusForbidden)

	rec = intruder.do(http.MethodPost, "/expenses", map[string]interface{}{
		"project_id": projectID, "date": "2024-03-01", "category": "materials", "amount": "10",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusForbidden)

	rec = intruder.do(http.MethodGet, "/projects", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	var list struct {
		Total int64 `json:"total"`
	}
	intruder.decode(rec, &list)
	c.Assert(list.Total, qt.Equals, int64(0))
}

func TestBadRequests(t *testing.T) {
	c := qt.New(t)
	cl := newClient(c)
	cl.signIn("pm@example.com")

	rec := cl.do(http.MethodGet, "/projects/not-a-uuid", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = cl.do(http.MethodPost, "/projects", map[string]string{
		"name": "Riverside", "location": "Kampala", "start_date": "2024-05-01", "end_date": "2024-01-01",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = cl.do(http.MethodGet, "/projects?page=zero", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = cl.do(http.MethodGet, "/projects?page=9223372036854775807", nil)
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

	rec = cl.do(http.MethodPost, "/laborers", map[string]interface{}{"name": "Okello", "role": "mason"})
	c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)
}
