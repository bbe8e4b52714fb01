// api/controller/user_controller.go
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

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"required"`
}

// CreateUser endpoint
func (uc *UserController) CreateUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", app_errors.ErrInvalidUserData)
		return
	}

	user := model.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.Role(req.Role),
		Status:    model.StatusActive,
	}

	created, err := uc.userService.CreateUser(c, principal, user, req.Password)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusCreated, "User created", created)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	user, err := uc.userService.GetUser(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "User retrieved", user)
}

// UpdateUser endpoint
func (uc *UserController) UpdateUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", app_errors.ErrInvalidUserData)
		return
	}
	user.ID = c.Param("id")

	updated, err := uc.userService.UpdateUser(c, principal, user)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "User updated", updated)
}

// DeleteUser endpoint
func (uc *UserController) DeleteUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := uc.userService.DeleteUser(c, principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "User deleted", nil)
}

// ListUsers endpoint
func (uc *UserController) ListUsers(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}
	sortBy, sortOrder := helper_util.GetSortParams(c)

	criteria := model.UserSearchCriteria{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}

	users, pagination, err := uc.userService.ListUsers(c, principal, criteria)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Users retrieved", users, pagination)
}
