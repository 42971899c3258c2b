package routes

import (
	"net/http"

	"sitecms/internal/api/handlers"
	"sitecms/internal/api/middleware"
	"sitecms/internal/config"
	"sitecms/internal/models"
	"sitecms/internal/rbac"
	"sitecms/internal/services"
	"sitecms/internal/session"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	sessions := session.NewGormStore(models.DB)
	authService := services.NewAuthService(cfg, sessions)
	auditService := services.NewAuditService()
	userService := services.NewUserService(authService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, auditService, cfg)
	userHandler := handlers.NewUserHandler(userService, authService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)
	branchHandler := handlers.NewBranchHandler(services.NewBranchService())
	productHandler := handlers.NewProductHandler(services.NewProductService())
	profileHandler := handlers.NewProfileHandler(services.NewProfileService())
	fileHandler := handlers.NewFileHandler(services.NewStorageService(cfg.Storage.UploadsDir))
	carouselHandler := handlers.NewCarouselHandler(services.NewCarouselService())

	// Middleware
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "sitecms API is running",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes: Authenticate -> Audit -> Authorize -> Handle
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg, authService, auditService))
	protected.Use(middleware.AuditTrail(auditService))
	{
		// Auth routes (protected)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)

		// User management routes (admin only)
		users := protected.Group("/users")
		users.Use(middleware.RequireRole(auditService, rbac.RoleAdmin))
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id/role", userHandler.ChangeRole)
			users.PUT("/:id/password", userHandler.UpdatePassword)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.POST("/:id/force-logout", userHandler.ForceLogout)
		}

		// Audit log routes
		logs := protected.Group("/logs")
		{
			logs.GET("", middleware.RequirePermission(rbac.ResourceLogs, rbac.ActionRead, auditService), auditHandler.GetLogs)
			logs.DELETE("", middleware.RequirePermission(rbac.ResourceLogs, rbac.ActionDelete, auditService), auditHandler.Cleanup)
		}

		// Branch directory routes
		branches := protected.Group("/branches")
		{
			branches.GET("", middleware.RequirePermission(rbac.ResourceBranches, rbac.ActionRead, auditService), branchHandler.GetBranches)
			branches.GET("/:id", middleware.RequirePermission(rbac.ResourceBranches, rbac.ActionRead, auditService), branchHandler.GetBranch)
			branches.POST("", middleware.RequirePermission(rbac.ResourceBranches, rbac.ActionCreate, auditService), branchHandler.CreateBranch)
			branches.PUT("/:id", middleware.RequirePermission(rbac.ResourceBranches, rbac.ActionUpdate, auditService), branchHandler.UpdateBranch)
			branches.DELETE("/:id", middleware.RequirePermission(rbac.ResourceBranches, rbac.ActionDelete, auditService), branchHandler.DeleteBranch)
		}

		// Product page routes
		products := protected.Group("/products")
		{
			products.GET("", middleware.RequirePermission(rbac.ResourceProducts, rbac.ActionRead, auditService), productHandler.GetProducts)
			products.GET("/:id", middleware.RequirePermission(rbac.ResourceProducts, rbac.ActionRead, auditService), productHandler.GetProduct)
			products.POST("", middleware.RequirePermission(rbac.ResourceProducts, rbac.ActionCreate, auditService), productHandler.CreateProduct)
			products.PUT("/:id", middleware.RequirePermission(rbac.ResourceProducts, rbac.ActionUpdate, auditService), productHandler.UpdateProduct)
			products.DELETE("/:id", middleware.RequirePermission(rbac.ResourceProducts, rbac.ActionDelete, auditService), productHandler.DeleteProduct)
		}

		// Profile bio routes
		profiles := protected.Group("/profiles")
		{
			profiles.GET("", middleware.RequirePermission(rbac.ResourceProfiles, rbac.ActionRead, auditService), profileHandler.GetProfiles)
			profiles.GET("/:id", middleware.RequirePermission(rbac.ResourceProfiles, rbac.ActionRead, auditService), profileHandler.GetProfile)
			profiles.POST("", middleware.RequirePermission(rbac.ResourceProfiles, rbac.ActionCreate, auditService), profileHandler.CreateProfile)
			profiles.PUT("/:id", middleware.RequirePermission(rbac.ResourceProfiles, rbac.ActionUpdate, auditService), profileHandler.UpdateProfile)
			profiles.DELETE("/:id", middleware.RequirePermission(rbac.ResourceProfiles, rbac.ActionDelete, auditService), profileHandler.DeleteProfile)
		}

		// File repository routes
		files := protected.Group("/files")
		{
			files.GET("", middleware.RequirePermission(rbac.ResourceFiles, rbac.ActionRead, auditService), fileHandler.GetFiles)
			files.POST("/:dir", middleware.RequirePermission(rbac.ResourceFiles, rbac.ActionUpload, auditService), fileHandler.Upload)
			files.DELETE("/:id", middleware.RequirePermission(rbac.ResourceFiles, rbac.ActionDelete, auditService), fileHandler.DeleteFile)
		}

		// Carousel routes. Slide mutations gate on seniority; the thresholds
		// match the content grants (contributors create and update, editors
		// delete).
		carousel := protected.Group("/carousel")
		{
			carousel.GET("", middleware.RequirePermission(rbac.ResourceContent, rbac.ActionRead, auditService), carouselHandler.GetSlides)
			carousel.POST("", middleware.RequireRoleOrHigher(rbac.RoleContributor, auditService), carouselHandler.CreateSlide)
			carousel.PUT("/:id", middleware.RequireRoleOrHigher(rbac.RoleContributor, auditService), carouselHandler.UpdateSlide)
			carousel.DELETE("/:id", middleware.RequireRoleOrHigher(rbac.RoleEditor, auditService), carouselHandler.DeleteSlide)
		}
	}
}
