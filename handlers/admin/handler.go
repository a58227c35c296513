package admin

import (
	"net/http"

	"blog-backend/db"
	"blog-backend/models"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Dashboard statistics
// @Description Article and user counts for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Router /admin/dashboard [get]
func GetDashboardStats(c *gin.Context) {
	// four independent counts; a consistent snapshot across them is not
	// required
	var totalArticles, publishedCount, draftCount, totalUsers int64

	if err := db.DB.Model(&models.Article{}).Count(&totalArticles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting articles: " + err.Error()})
		return
	}
	if err := db.DB.Model(&models.Article{}).Where("status = ?", models.StatusPublished).Count(&publishedCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting published articles: " + err.Error()})
		return
	}
	if err := db.DB.Model(&models.Article{}).Where("status = ?", models.StatusDraft).Count(&draftCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting draft articles: " + err.Error()})
		return
	}
	if err := db.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting users: " + err.Error()})
		return
	}

	utils.SendSuccess(c, http.StatusOK, "", gin.H{
		"totalArticles":  totalArticles,
		"publishedCount": publishedCount,
		"draftCount":     draftCount,
		"totalUsers":     totalUsers,
	})
}

// @Summary List all articles
// @Description Paginated listing of articles in every status, newest first, with their author
// @Tags admin
// @Produce json
// @Param page query int false "Page number (20 per page)"
// @Security BearerAuth
// @Success 200 {object} utils.Page
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Router /admin/articles [get]
func GetAllArticles(c *gin.Context) {
	page := utils.PageParam(c)

	var total int64
	if err := db.DB.Model(&models.Article{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting articles: " + err.Error()})
		return
	}

	var articles []models.Article
	err := db.DB.Preload("User").
		Order("created_at DESC").
		Limit(utils.AdminPageSize).
		Offset(utils.Offset(page, utils.AdminPageSize)).
		Find(&articles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving articles: " + err.Error()})
		return
	}

	for i := range articles {
		articles[i].User.Password = ""
	}

	c.JSON(http.StatusOK, utils.NewPage(articles, page, utils.AdminPageSize, total))
}

// @Summary List all users
// @Description Paginated listing of users annotated with their article count
// @Tags admin
// @Produce json
// @Param page query int false "Page number (20 per page)"
// @Security BearerAuth
// @Success 200 {object} utils.Page
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Access denied"
// @Router /admin/users [get]
func GetAllUsers(c *gin.Context) {
	page := utils.PageParam(c)

	var total int64
	if err := db.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting users: " + err.Error()})
		return
	}

	var users []models.UserWithArticleCount
	err := db.DB.Model(&models.User{}).
		Select("users.*, count(articles.id) AS article_count").
		Joins("LEFT JOIN articles ON articles.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Limit(utils.AdminPageSize).
		Offset(utils.Offset(page, utils.AdminPageSize)).
		Scan(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving users: " + err.Error()})
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	c.JSON(http.StatusOK, utils.NewPage(users, page, utils.AdminPageSize, total))
}
