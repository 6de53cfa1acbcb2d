package routes

import (
	"crm-backend/internal/api/handlers"
	"crm-backend/internal/api/middleware"
	"crm-backend/internal/auth"
	"crm-backend/internal/authz"
	"crm-backend/internal/config"
	"crm-backend/internal/notify"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures the router with all application routes
func SetupRoutes(db *gorm.DB, cfg *config.Config, dispatcher notify.Dispatcher) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	validate := validator.New()
	policy := authz.NewPolicy()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	apiSettingsRepo := repository.NewAPISettingsRepository(db)
	emailRepo := repository.NewEmailRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Authentication
	authService := auth.NewService(cfg, userRepo, profileRepo, orgRepo)
	authMiddleware := auth.NewMiddleware(authService)
	authHandler := auth.NewHandler(authService)

	// Services
	orgService := service.NewOrganizationService(orgRepo, policy, validate)
	profileService := service.NewProfileService(profileRepo, userRepo, policy, validate)
	teamService := service.NewTeamService(teamRepo, profileRepo, policy, validate)
	accountService := service.NewAccountService(accountRepo, profileRepo, teamRepo, policy, dispatcher, validate)
	contactService := service.NewContactService(contactRepo, profileRepo, teamRepo, policy, dispatcher, validate)
	taskService := service.NewTaskService(taskRepo, accountRepo, profileRepo, teamRepo, commentRepo, attachmentRepo, policy, dispatcher, validate)
	invoiceService := service.NewInvoiceService(invoiceRepo, accountRepo, profileRepo, teamRepo, policy, dispatcher, validate)
	documentService := service.NewDocumentService(documentRepo, profileRepo, teamRepo, policy, dispatcher, validate)
	apiSettingsService := service.NewAPISettingsService(apiSettingsRepo, profileRepo, policy, validate)
	emailService := service.NewEmailService(emailRepo, policy, dispatcher, validate)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	profileHandler := handlers.NewProfileHandler(profileService)
	teamHandler := handlers.NewTeamHandler(teamService)
	accountHandler := handlers.NewAccountHandler(accountService)
	contactHandler := handlers.NewContactHandler(contactService)
	taskHandler := handlers.NewTaskHandler(taskService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	apiSettingsHandler := handlers.NewAPISettingsHandler(apiSettingsService)
	emailHandler := handlers.NewEmailHandler(emailService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public authentication routes
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/validate", authHandler.Validate)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Tenant-scoped routes. Every request below acts as exactly one
	// profile; admin-only operations are enforced in the services.
	api := router.Group("/api/v1")
	api.Use(authMiddleware.ResolveTenant())
	api.Use(authMiddleware.RequireProfile())
	{
		api.GET("/profile", profileHandler.GetCurrentProfile)

		api.GET("/organization", orgHandler.GetOrganization)
		api.PUT("/organization", orgHandler.UpdateOrganization)
		api.POST("/organization/rotate-api-key", orgHandler.RotateAPIKey)

		api.POST("/profiles", profileHandler.InviteProfile)
		api.GET("/profiles", profileHandler.ListProfiles)
		api.GET("/profiles/:id", profileHandler.GetProfile)
		api.PUT("/profiles/:id", profileHandler.UpdateProfile)
		api.DELETE("/profiles/:id", profileHandler.DeactivateProfile)

		api.POST("/teams", teamHandler.CreateTeam)
		api.GET("/teams", teamHandler.ListTeams)
		api.GET("/teams/:id", teamHandler.GetTeam)
		api.PUT("/teams/:id", teamHandler.UpdateTeam)
		api.DELETE("/teams/:id", teamHandler.DeleteTeam)

		api.POST("/accounts", accountHandler.CreateAccount)
		api.GET("/accounts", accountHandler.ListAccounts)
		api.GET("/accounts/:id", accountHandler.GetAccount)
		api.PUT("/accounts/:id", accountHandler.UpdateAccount)
		api.DELETE("/accounts/:id", accountHandler.DeleteAccount)

		api.POST("/contacts", contactHandler.CreateContact)
		api.GET("/contacts", contactHandler.ListContacts)
		api.GET("/contacts/:id", contactHandler.GetContact)
		api.PUT("/contacts/:id", contactHandler.UpdateContact)
		api.DELETE("/contacts/:id", contactHandler.DeleteContact)

		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks", taskHandler.ListTasks)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/comments", taskHandler.CreateComment)
		api.GET("/tasks/:id/comments", taskHandler.ListComments)
		api.POST("/tasks/:id/attachments", taskHandler.CreateAttachment)
		api.GET("/tasks/:id/attachments", taskHandler.ListAttachments)
		api.PUT("/comments/:id", taskHandler.UpdateComment)
		api.DELETE("/comments/:id", taskHandler.DeleteComment)
		api.DELETE("/attachments/:id", taskHandler.DeleteAttachment)

		api.POST("/invoices", invoiceHandler.CreateInvoice)
		api.GET("/invoices", invoiceHandler.ListInvoices)
		api.GET("/invoices/:id", invoiceHandler.GetInvoice)
		api.PUT("/invoices/:id", invoiceHandler.UpdateInvoice)
		api.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)

		api.POST("/documents", documentHandler.CreateDocument)
		api.GET("/documents", documentHandler.ListDocuments)
		api.GET("/documents/:id", documentHandler.GetDocument)
		api.PUT("/documents/:id", documentHandler.UpdateDocument)
		api.DELETE("/documents/:id", documentHandler.DeleteDocument)

		api.POST("/api-settings", apiSettingsHandler.CreateAPISettings)
		api.GET("/api-settings", apiSettingsHandler.ListAPISettings)
		api.GET("/api-settings/:id", apiSettingsHandler.GetAPISettings)
		api.PUT("/api-settings/:id", apiSettingsHandler.UpdateAPISettings)
		api.DELETE("/api-settings/:id", apiSettingsHandler.DeleteAPISettings)

		api.POST("/emails", emailHandler.CreateEmail)
		api.GET("/emails", emailHandler.ListEmails)
		api.GET("/emails/:id", emailHandler.GetEmail)
		api.POST("/emails/:id/send", emailHandler.SendEmail)
	}

	return router
}
