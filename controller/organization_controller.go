// api/controller/organization_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
	helper_util "github.com/dev-anuragk/assistly/api/util/helper"
)

type OrganizationController struct {
	orgService service.IOrganizationService
}

func NewOrganizationController(orgService service.IOrganizationService) *OrganizationController {
	return &OrganizationController{orgService: orgService}
}

type createOrganizationRequest struct {
	Name     string                     `json:"name" binding:"required"`
	Domain   string                     `json:"domain"`
	Settings model.OrganizationSettings `json:"settings"`
}

// CreateOrganization endpoint
func (oc *OrganizationController) CreateOrganization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", app_errors.ErrInvalidOrganizationData)
		return
	}

	org := model.Organization{
		Name:     req.Name,
		Domain:   req.Domain,
		Settings: req.Settings,
	}

	created, err := oc.orgService.CreateOrganization(c, principal, org)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusCreated, "Organization created", created)
}

// GetMyOrganization endpoint
func (oc *OrganizationController) GetMyOrganization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	org, err := oc.orgService.GetMyOrganization(c, principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Organization retrieved", org)
}

// GetOrganization endpoint
func (oc *OrganizationController) GetOrganization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	org, err := oc.orgService.GetOrganization(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Organization retrieved", org)
}

// UpdateOrganization endpoint
func (oc *OrganizationController) UpdateOrganization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var org model.Organization
	if err := c.ShouldBindJSON(&org); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid organization data", app_errors.ErrInvalidOrganizationData)
		return
	}
	org.ID = c.Param("id")

	updated, err := oc.orgService.UpdateOrganization(c, principal, org)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Organization updated", updated)
}

// DeleteOrganization endpoint
func (oc *OrganizationController) DeleteOrganization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := oc.orgService.DeleteOrganization(c, principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Organization deleted", nil)
}

// ListOrganizations endpoint
func (oc *OrganizationController) ListOrganizations(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	orgs, pagination, err := oc.orgService.ListOrganizations(c, principal, page, limit)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Organizations retrieved", orgs, pagination)
}
