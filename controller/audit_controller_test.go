package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/config"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/test/mock"
)

func auditTestSetup(t *testing.T, repo *mock.MockAuditRepository, p *auth.Principal) (*gin.Engine, *AuditController) {
	t.Helper()
	recorder := audit.NewRecorder(repo, config.AuditConfiguration{QueueSize: 4, WriteTimeout: time.Second})
	t.Cleanup(recorder.Close)
	ac := NewAuditController(audit.NewService(repo, recorder))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	inject := func(c *gin.Context) {
		auth.SetPrincipal(c, p)
		c.Next()
	}
	router.GET("/audit-logs", inject, ac.ListAuditLogs)
	router.GET("/audit-logs/me", inject, ac.MyAuditLogs)
	router.GET("/audit-logs/:id", inject, ac.GetAuditLog)
	return router, ac
}

func TestListAuditLogsScopesFilter(t *testing.T) {
	repo := new(mock.MockAuditRepository)
	manager := &auth.Principal{ID: "u1", Role: model.RoleManager, OrganizationID: "org-1"}
	router, _ := auditTestSetup(t, repo, manager)

	entries := []audit.Entry{{ID: "1", OrganizationID: "org-1", UserID: "u1", Action: audit.ActionRead, Resource: "doc"}}
	repo.On("Search",
		tmock.Anything,
		tmock.MatchedBy(func(f audit.Filter) bool { return f.OrganizationID == "org-1" }),
		tmock.Anything, tmock.Anything,
	).Return(entries, int64(1), nil)

	// The request asks for a foreign organization; the service pins it back.
	req := httptest.NewRequest(http.MethodGet, "/audit-logs?organizationId=org-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	repo.AssertExpectations(t)
}

func TestListAuditLogsRejectsBadDates(t *testing.T) {
	repo := new(mock.MockAuditRepository)
	manager := &auth.Principal{ID: "u1", Role: model.RoleManager, OrganizationID: "org-1"}
	router, _ := auditTestSetup(t, repo, manager)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs?startDate=yesterday", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Search")
}

func TestMyAuditLogs(t *testing.T) {
	repo := new(mock.MockAuditRepository)
	dev := &auth.Principal{ID: "u7", Role: model.RoleDeveloper, OrganizationID: "org-1"}
	router, _ := auditTestSetup(t, repo, dev)

	repo.On("Search",
		tmock.Anything,
		tmock.MatchedBy(func(f audit.Filter) bool { return f.UserID == "u7" }),
		tmock.Anything, tmock.Anything,
	).Return([]audit.Entry{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestGetAuditLogForeignOrganization(t *testing.T) {
	repo := new(mock.MockAuditRepository)
	manager := &auth.Principal{ID: "u1", Role: model.RoleManager, OrganizationID: "org-1"}
	router, _ := auditTestSetup(t, repo, manager)

	foreign := &audit.Entry{ID: "x", OrganizationID: "org-2", UserID: "u9", Action: audit.ActionRead, Resource: "doc"}
	repo.On("GetByID", tmock.Anything, "x").Return(foreign, nil)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/x", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetAuditLogMissing(t *testing.T) {
	repo := new(mock.MockAuditRepository)
	manager := &auth.Principal{ID: "u1", Role: model.RoleManager, OrganizationID: "org-1"}
	router, _ := auditTestSetup(t, repo, manager)

	repo.On("GetByID", tmock.Anything, "missing").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/audit-logs/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
