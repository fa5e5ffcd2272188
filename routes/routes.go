package routes

import (
	"os"
	"strings"

	"avquotes-backend/config"
	"avquotes-backend/controllers"
	"avquotes-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.POST("/register", utils.AdminOnly(), controllers.Register)
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// User management routes
		users := api.Group("/users", utils.AdminOnly())
		{
			users.GET("", controllers.GetUsers)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		// Department routes
		departments := api.Group("/departments")
		{
			departments.GET("", controllers.GetDepartments)
			departments.POST("", utils.AdminOnly(), controllers.CreateDepartment)
			departments.PUT("/:id", utils.AdminOnly(), controllers.UpdateDepartment)
			departments.DELETE("/:id", utils.AdminOnly(), controllers.DeleteDepartment)
		}

		// Company and contact routes
		companies := api.Group("/companies")
		{
			companies.POST("", controllers.CreateCompany)
			companies.GET("", controllers.GetCompanies)
			companies.GET("/:id", controllers.GetCompany)
			companies.PUT("/:id", controllers.UpdateCompany)
			companies.DELETE("/:id", controllers.DeleteCompany)
			companies.GET("/:id/contacts", controllers.GetContactsByCompany)
		}

		contacts := api.Group("/contacts")
		{
			contacts.POST("", controllers.CreateContact)
			contacts.PUT("/:id", controllers.UpdateContact)
			contacts.DELETE("/:id", controllers.DeleteContact)
		}

		// Quote routes
		quotes := api.Group("/quotes")
		{
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.PUT("/:id/status", controllers.UpdateQuoteStatus)
			quotes.DELETE("/:id", controllers.DeleteQuote)

			quotes.GET("/:id/rooms", controllers.GetRoomsByQuote)

			quotes.GET("/:id/financials", controllers.GetQuoteFinancials)
			quotes.GET("/:id/bom", controllers.GetQuoteBOM)
			quotes.GET("/:id/bom/export", controllers.ExportQuoteBOM)

			quotes.GET("/:id/versions", controllers.GetQuoteVersions)
			quotes.POST("/:id/versions/:version/restore", controllers.RestoreQuoteVersion)

			quotes.POST("/:id/apply-template/:templateId", controllers.ApplyTemplate)

			quotes.POST("/:id/approvals", controllers.CreateApproval)
			quotes.GET("/:id/approvals", controllers.GetQuoteApprovals)
		}

		// Room routes
		rooms := api.Group("/rooms")
		{
			rooms.POST("", controllers.CreateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
			rooms.GET("/:id/systems", controllers.GetSystemsByRoom)
			rooms.GET("/:id/labor", controllers.GetLaborByRoom)
			rooms.GET("/:id/services", controllers.GetServicesByRoom)
		}

		// System routes
		systems := api.Group("/systems")
		{
			systems.POST("", controllers.CreateSystem)
			systems.PUT("/:id", controllers.UpdateSystem)
			systems.DELETE("/:id", controllers.DeleteSystem)
			systems.GET("/:id/equipment", controllers.GetEquipmentBySystem)
		}

		// Equipment routes
		equipment := api.Group("/equipment")
		{
			equipment.POST("", controllers.CreateEquipment)
			equipment.PUT("/:id", controllers.UpdateEquipment)
			equipment.DELETE("/:id", controllers.DeleteEquipment)
		}

		// Labor routes
		labor := api.Group("/labor")
		{
			labor.POST("", controllers.CreateLabor)
			labor.PUT("/:id", controllers.UpdateLabor)
			labor.DELETE("/:id", controllers.DeleteLabor)
		}

		// Room service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Template routes
		templates := api.Group("/templates")
		{
			templates.POST("", controllers.CreateTemplate)
			templates.GET("", controllers.GetTemplates)
			templates.GET("/:id", controllers.GetTemplate)
			templates.DELETE("/:id", controllers.DeleteTemplate)
		}

		// Approval decision routes
		approvals := api.Group("/approvals")
		{
			approvals.PUT("/:approvalId", controllers.UpdateApproval)
		}

		// Vendor price book routes
		vendorPrices := api.Group("/vendor-prices")
		{
			vendorPrices.POST("/inspect", controllers.InspectVendorPrices)
			vendorPrices.POST("/import", controllers.ImportVendorPrices)
			vendorPrices.GET("", controllers.GetVendorPrices)
			vendorPrices.GET("/search", controllers.SearchVendorPrices)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboard)
	}

	return r
}
