package main

import (
	"fmt"
	"log"
	"os"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/routes"
	"avquotes-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Company{},
		&models.Contact{},
		&models.Quote{},
		&models.QuoteVersion{},
		&models.Room{},
		&models.System{},
		&models.Equipment{},
		&models.Labor{},
		&models.Service{},
		&models.Template{},
		&models.VendorPrice{},
		&models.Approval{},
	)

	seedDefaults()
}

// seedDefaults creates the built-in departments and an initial admin account
// on an empty database
func seedDefaults() {
	for _, name := range []string{"AV", "LV", "IT"} {
		var dept models.Department
		if err := config.DB.Where("name = ?", name).First(&dept).Error; err != nil {
			if err := config.DB.Create(&models.Department{Name: name}).Error; err != nil {
				log.Printf("Failed to seed department %s: %v", name, err)
			}
		}
	}

	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	if count == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		admin := models.User{
			Username: "admin",
			Password: password, // Hashed in BeforeCreate hook
			Role:     "admin",
			IsActive: true,
		}
		if err := config.DB.Create(&admin).Error; err != nil {
			log.Printf("Failed to seed admin user: %v", err)
		} else {
			log.Println("Seeded default admin user")
		}
	}
}

func main() {

	services.NewPriceBookService(config.DB).StartExpiryScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
