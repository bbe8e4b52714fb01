// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-anuragk/assistly/api/audit"
	"github.com/dev-anuragk/assistly/api/controller"
	"github.com/dev-anuragk/assistly/api/middleware"
	"github.com/dev-anuragk/assistly/api/model"
)

// SetupRouter wires every route behind its guards. Ordering inside a route
// chain is authenticate, then authorize, then audit, then handle: the audit
// wrapper sits inside the guards so denied requests never produce entries.
func SetupRouter(
	controllers *controller.Controllers,
	authenticator *middleware.Authenticator,
	auditService audit.Service,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	// Public routes
	api.POST("/auth/login", controllers.Auth.Login)

	// Everything below requires an active, authenticated account.
	authed := api.Group("")
	authed.Use(authenticator.Authenticate())

	authRoutes := authed.Group("/auth")
	{
		authRoutes.POST("/logout", controllers.Auth.Logout)
		authRoutes.GET("/profile", controllers.Auth.GetProfile)
		authRoutes.PUT("/profile",
			middleware.AuditLogger(auditService, audit.ActionUpdate, "profile"),
			controllers.Auth.UpdateProfile)
		authRoutes.PUT("/password",
			middleware.AuditLogger(auditService, audit.ActionUpdate, "password"),
			controllers.Auth.ChangePassword)
	}

	users := authed.Group("/users")
	{
		users.POST("",
			middleware.RequireOrgAdmin(),
			middleware.AuditLogger(auditService, audit.ActionCreate, "user"),
			controllers.User.CreateUser)
		users.GET("", controllers.User.ListUsers)
		users.GET("/:id", controllers.User.GetUser)
		users.PUT("/:id",
			middleware.RequireMinRole(model.RoleManager),
			middleware.AuditLogger(auditService, audit.ActionUpdate, "user"),
			controllers.User.UpdateUser)
		users.DELETE("/:id",
			middleware.RequireOrgAdmin(),
			middleware.AuditLogger(auditService, audit.ActionDelete, "user"),
			controllers.User.DeleteUser)
	}

	orgs := authed.Group("/organizations")
	{
		orgs.POST("",
			middleware.AuditLogger(auditService, audit.ActionCreate, "organization"),
			controllers.Org.CreateOrganization)
		orgs.GET("", middleware.RequireSuperAdmin(), controllers.Org.ListOrganizations)
		orgs.GET("/me", middleware.RequireOrganization(), controllers.Org.GetMyOrganization)
		orgs.GET("/:id", controllers.Org.GetOrganization)
		orgs.PUT("/:id",
			middleware.RequireOrgAdmin(),
			middleware.RequireSameOrganization("id"),
			middleware.AuditLogger(auditService, audit.ActionUpdate, "organization"),
			controllers.Org.UpdateOrganization)
		orgs.DELETE("/:id",
			middleware.RequireSuperAdmin(),
			middleware.AuditLogger(auditService, audit.ActionDelete, "organization"),
			controllers.Org.DeleteOrganization)
	}

	chats := authed.Group("/chats")
	chats.Use(middleware.RequireOrganization())
	{
		chats.POST("",
			middleware.AuditLogger(auditService, audit.ActionCreate, "chat"),
			controllers.Chat.CreateChat)
		chats.GET("", controllers.Chat.ListChats)
		chats.GET("/:id", controllers.Chat.GetChat)
		chats.POST("/:id/messages",
			middleware.AuditLogger(auditService, audit.ActionUpdate, "chat"),
			controllers.Chat.AddMessage)
		chats.DELETE("/:id",
			middleware.AuditLogger(auditService, audit.ActionDelete, "chat"),
			controllers.Chat.DeleteChat)
	}

	documents := authed.Group("/documents")
	documents.Use(middleware.RequireOrganization())
	{
		documents.POST("",
			middleware.AuditLogger(auditService, audit.ActionUpload, "document"),
			controllers.Document.UploadDocument)
		documents.GET("", controllers.Document.ListDocuments)
		documents.GET("/:id", controllers.Document.GetDocument)
		documents.GET("/:id/download",
			middleware.AuditLogger(auditService, audit.ActionDownload, "document"),
			controllers.Document.DownloadDocument)
		documents.DELETE("/:id",
			middleware.AuditLogger(auditService, audit.ActionDelete, "document"),
			controllers.Document.DeleteDocument)
	}

	auditRoutes := authed.Group("/audit-logs")
	{
		auditRoutes.GET("/me", controllers.Audit.MyAuditLogs)
		auditRoutes.GET("",
			middleware.RequireMinRole(model.RoleManager),
			controllers.Audit.ListAuditLogs)
		auditRoutes.GET("/stats",
			middleware.RequireMinRole(model.RoleManager),
			controllers.Audit.GetAuditStats)
		auditRoutes.GET("/:id",
			middleware.RequireMinRole(model.RoleManager),
			controllers.Audit.GetAuditLog)
	}

	return router
}
