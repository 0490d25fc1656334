package routes

import (
	"parfumnotebook-backend/config"
	"parfumnotebook-backend/controllers"
	"parfumnotebook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// The original client is served from a different origin; mirror its
	// wide-open CORS setup.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Report routes carry no auth middleware: the shop client sends a bearer
	// token but the server has never enforced it (single trusted user).
	api := r.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.POST("", controllers.SaveReport)
			reports.GET("", controllers.GetReportByDate)
			reports.GET("/:id/export/csv", controllers.ExportReportCSV)
		}
	}

	return r
}
