// api/controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login data", err)
		return
	}

	user, tokens, err := ac.authService.Login(c, req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	util.RespondWithSuccess(c, http.StatusOK, "Login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout endpoint
func (ac *AuthController) Logout(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := ac.authService.Logout(c, principal, c.ClientIP(), c.Request.UserAgent()); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Logout successful", nil)
}

// GetProfile endpoint
func (ac *AuthController) GetProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	user, err := ac.authService.GetProfile(c, principal)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfile endpoint
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid profile data", app_errors.ErrInvalidUserData)
		return
	}

	user, err := ac.authService.UpdateProfile(c, principal, req.FirstName, req.LastName)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Profile updated", user)
}

// ChangePassword endpoint
func (ac *AuthController) ChangePassword(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid password data", err)
		return
	}

	if err := ac.authService.ChangePassword(c, principal, req.OldPassword, req.NewPassword); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Password changed", nil)
}
