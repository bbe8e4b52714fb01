// api/controller/audit_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/util"
	helper_util "github.com/dev-anuragk/assistly/api/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

// ListAuditLogs endpoint. Filters are parsed from explicit query parameters;
// non-super-admin callers are scoped to their own organization by the service.
func (ac *AuditController) ListAuditLogs(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	filter, err := parseAuditFilter(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid date filter", err)
		return
	}
	sort, page, err := parseAuditWindow(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	entries, pagination, err := ac.auditService.Query(c, principal, filter, sort, page)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Audit logs retrieved", entries, pagination)
}

// MyAuditLogs endpoint returns the caller's own trail.
func (ac *AuditController) MyAuditLogs(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	sort, page, err := parseAuditWindow(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	entries, pagination, err := ac.auditService.MyLogs(c, principal, sort, page)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Audit logs retrieved", entries, pagination)
}

// GetAuditLog endpoint
func (ac *AuditController) GetAuditLog(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	entry, err := ac.auditService.GetByID(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Audit log retrieved", entry)
}

// GetAuditStats endpoint
func (ac *AuditController) GetAuditStats(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	stats, err := ac.auditService.Stats(c, principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Audit stats retrieved", stats)
}

func parseAuditFilter(c *gin.Context) (audit.Filter, error) {
	filter := audit.Filter{
		OrganizationID: c.Query("organizationId"),
		UserID:         c.Query("userId"),
		Action:         audit.Action(c.Query("action")),
		Resource:       c.Query("resource"),
	}

	start, err := helper_util.ParseOptionalTime(c.Query("startDate"))
	if err != nil {
		return audit.Filter{}, err
	}
	end, err := helper_util.ParseOptionalTime(c.Query("endDate"))
	if err != nil {
		return audit.Filter{}, err
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}

func parseAuditWindow(c *gin.Context) (audit.Sort, audit.Page, error) {
	pageNum, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		return audit.Sort{}, audit.Page{}, err
	}
	sortBy, sortOrder := helper_util.GetSortParams(c)
	if sortBy == "createdAt" {
		sortBy = "timestamp"
	}
	return audit.Sort{Field: sortBy, Ascending: sortOrder == "asc"},
		audit.Page{Number: pageNum, Limit: limit}, nil
}
