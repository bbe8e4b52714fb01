// api/service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/dao"
	"github.com/dev-anuragk/assistly/api/util"
)

type Services struct {
	Auth     IAuthService
	User     IUserService
	Org      IOrganizationService
	Chat     IChatService
	Document IDocumentService

	// UserDAO doubles as the user directory for the authentication guard.
	UserDAO *dao.UserDAO
}

func InitializeServices(
	driver neo4j.Driver,
	tokens *auth.TokenManager,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	userDAO := dao.NewUserDAO(driver)
	organizationDAO := dao.NewOrganizationDAO(driver)
	chatDAO := dao.NewChatDAO(driver)
	documentDAO := dao.NewDocumentDAO(driver)

	services := &Services{
		Auth:     NewAuthService(userDAO, tokens, auditService, validationUtil, cacheService),
		User:     NewUserService(userDAO, validationUtil, cacheService, notificationSvc, eventBus),
		Org:      NewOrganizationService(organizationDAO, userDAO, validationUtil, cacheService, notificationSvc, eventBus),
		Chat:     NewChatService(chatDAO, validationUtil),
		Document: NewDocumentService(documentDAO, validationUtil),
		UserDAO:  userDAO,
	}

	notificationSvc.SubscribeAll(eventBus)

	return services, nil
}
