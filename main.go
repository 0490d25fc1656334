package main

import (
	"fmt"
	"log"
	"os"

	"parfumnotebook-backend/config"
	"parfumnotebook-backend/models"
	"parfumnotebook-backend/routes"
	"parfumnotebook-backend/services"

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
		&models.DailyReport{},
		&models.ReportItem{},
		&models.Task{},
		&models.TesterWriteOffItem{},
	)
}

func main() {
	summary := services.NewSummaryService(config.DB)
	if summary.Configured() {
		summary.StartScheduler()
	} else {
		log.Println("Daily summary SMS not configured, scheduler disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
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
