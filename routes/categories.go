package routes

import (
	"blog-backend/handlers/categories"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func CategoriesRoutes(r *gin.Engine) {
	r.GET("/categories", categories.GetAllCategories)

	// category writes are admin only
	categoriesPrivateRoutes := r.Group("/categories")
	categoriesPrivateRoutes.Use(middleware.JWTAuth())
	categoriesPrivateRoutes.Use(middleware.AdminAuth())
	{
		categoriesPrivateRoutes.POST("", categories.CreateCategory)
		categoriesPrivateRoutes.PUT("/:id", categories.UpdateCategory)
		categoriesPrivateRoutes.DELETE("/:id", categories.DeleteCategory)
	}
}
