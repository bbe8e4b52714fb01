// api/controller/controllers.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
)

type Controllers struct {
	Auth     *AuthController
	User     *UserController
	Org      *OrganizationController
	Chat     *ChatController
	Document *DocumentController
	Audit    *AuditController
}

func InitializeControllers(services *service.Services, auditService audit.Service) *Controllers {
	return &Controllers{
		Auth:     NewAuthController(services.Auth),
		User:     NewUserController(services.User),
		Org:      NewOrganizationController(services.Org),
		Chat:     NewChatController(services.Chat),
		Document: NewDocumentController(services.Document),
		Audit:    NewAuditController(auditService),
	}
}

// requirePrincipal pulls the authenticated actor from the request context.
// The authentication middleware has already run on every route that reaches a
// handler, so a miss means a wiring mistake, not a user mistake.
func requirePrincipal(c *gin.Context) (*auth.Principal, bool) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized,
			app_errors.ErrUnauthorized.Error(), app_errors.ErrUnauthorized)
		return nil, false
	}
	return principal, true
}

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch err {
	case app_errors.ErrUserNotFound,
		app_errors.ErrOrganizationNotFound,
		app_errors.ErrChatNotFound,
		app_errors.ErrDocumentNotFound,
		app_errors.ErrAuditLogNotFound:
		return http.StatusNotFound
	case app_errors.ErrUserConflict,
		app_errors.ErrOrganizationConflict,
		app_errors.ErrAlreadyInOrganization:
		return http.StatusConflict
	case app_errors.ErrInvalidUserData,
		app_errors.ErrInvalidPassword,
		app_errors.ErrInvalidOrganizationData,
		app_errors.ErrInvalidChatData,
		app_errors.ErrInvalidDocumentData:
		return http.StatusBadRequest
	case app_errors.ErrInvalidCredentials,
		app_errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case app_errors.ErrAccessDenied,
		app_errors.ErrInsufficientRole,
		app_errors.ErrNoOrganization,
		app_errors.ErrCrossOrganization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(c *gin.Context, err error) {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Internal detail stays in the logs, not in the response body.
		message = app_errors.ErrInternalServer.Error()
	}
	util.RespondWithError(c, code, message, err)
}
