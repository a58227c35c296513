package main

import (
	"log"

	"blog-backend/db"
	_ "blog-backend/docs"
	"blog-backend/routes"
	"blog-backend/storage"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title Blog Backend API
// @version 1.0
// @description CMS backend: articles, categories, users and admin statistics
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = utils.LogWriter()

	db.InitDB()

	if err := storage.InitCloudinary(); err != nil {
		utils.LogError(err, "Cloudinary initialization failed")
		log.Println("Featured image upload will not work until it is configured.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
