package routes

import (
	"blog-backend/handlers/admin"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth())
	{
		adminRoutes.GET("/dashboard", admin.GetDashboardStats)
		adminRoutes.GET("/articles", admin.GetAllArticles)
		adminRoutes.GET("/users", admin.GetAllUsers)
	}
}
