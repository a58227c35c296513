package routes

import (
	"blog-backend/handlers/articles"
	"blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ArticlesRoutes(r *gin.Engine) {
	// public listing and show: never surfaces drafts, whoever asks
	r.GET("/articles", articles.GetPublishedArticles)
	r.GET("/articles/:id", articles.GetArticleByID)

	r.GET("/me/articles", middleware.JWTAuth(), articles.GetMyArticles)

	articlesRoutes := r.Group("/articles")
	articlesRoutes.Use(middleware.JWTAuth())
	{
		articlesRoutes.POST("", articles.CreateArticle)
		articlesRoutes.PUT("/:id", articles.UpdateArticle)
		articlesRoutes.DELETE("/:id", articles.DeleteArticle)
	}
}
