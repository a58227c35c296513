package articles

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"blog-backend/db"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/storage"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const imageFolder = "article_images"

// articleInput is the multipart form payload shared by create and update.
type articleInput struct {
	Title       string
	Slug        string
	Content     string
	Status      models.ArticleStatus
	CategoryIDs []string
}

func parseArticleForm(c *gin.Context) articleInput {
	return articleInput{
		Title:       c.Request.FormValue("title"),
		Slug:        c.Request.FormValue("slug"),
		Content:     c.Request.FormValue("content"),
		Status:      models.ArticleStatus(c.Request.FormValue("status")),
		CategoryIDs: parseCategoryIDs(c.Request.FormValue("categories")),
	}
}

// parseCategoryIDs accepts either a JSON array of ids or a comma-separated
// list.
func parseCategoryIDs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err == nil {
			return ids
		}
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// validateArticleInput applies the create/update rules: title 1-255 chars,
// content at least 100 chars, at least one category, status draft or
// published. Returns per-field messages, empty when the input is valid.
func validateArticleInput(input articleInput) map[string]string {
	fields := make(map[string]string)

	if input.Title == "" {
		fields["title"] = "The title is required"
	} else if utf8.RuneCountInString(input.Title) > 255 {
		fields["title"] = "The title cannot exceed 255 characters"
	}

	if input.Content == "" {
		fields["content"] = "The content is required"
	} else if utf8.RuneCountInString(input.Content) < 100 {
		fields["content"] = "The content must contain at least 100 characters"
	}

	if input.Status != models.StatusDraft && input.Status != models.StatusPublished {
		fields["status"] = "The status must be draft or published"
	}

	if len(input.CategoryIDs) == 0 {
		fields["categories"] = "At least one category is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// loadCategories resolves the requested category ids, failing when any of
// them does not exist.
func loadCategories(ids []string) ([]models.Category, error) {
	var categories []models.Category
	if err := db.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return categories, nil
}

// storeImage and removeImage tolerate an unconfigured blob store: the
// server keeps running without one, so every access has to be guarded.
func storeImage(file *multipart.FileHeader) (string, error) {
	if storage.Default == nil {
		return "", storage.ErrNotConfigured
	}
	return storage.Default.Upload(file, imageFolder)
}

func removeImage(imageURL string) error {
	if storage.Default == nil {
		return storage.ErrNotConfigured
	}
	return storage.Default.Delete(imageURL)
}

func fetchArticleWithRelations(id string) (models.Article, error) {
	var article models.Article
	err := db.DB.Scopes(models.WithAuthorAndCategories).First(&article, "id = ?", id).Error
	return article, err
}

func sanitizeArticle(article *models.Article) {
	article.User.Password = ""
}

// @Summary List published articles
// @Description Paginated listing of published articles, newest first, with author and categories
// @Tags articles
// @Produce json
// @Param page query int false "Page number (10 per page)"
// @Success 200 {object} utils.Page
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /articles [get]
func GetPublishedArticles(c *gin.Context) {
	page := utils.PageParam(c)

	var total int64
	if err := db.DB.Model(&models.Article{}).Scopes(models.Published).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting articles: " + err.Error()})
		return
	}

	var articles []models.Article
	err := db.DB.Scopes(models.Published, models.WithAuthorAndCategories).
		Order("created_at DESC").
		Limit(utils.PublicPageSize).
		Offset(utils.Offset(page, utils.PublicPageSize)).
		Find(&articles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving articles: " + err.Error()})
		return
	}

	for i := range articles {
		sanitizeArticle(&articles[i])
	}

	c.JSON(http.StatusOK, utils.NewPage(articles, page, utils.PublicPageSize, total))
}

// @Summary List my articles
// @Description Paginated listing of the caller's own articles, drafts included, newest first
// @Tags articles
// @Produce json
// @Param page query int false "Page number (10 per page)"
// @Security BearerAuth
// @Success 200 {object} utils.Page
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /me/articles [get]
func GetMyArticles(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	page := utils.PageParam(c)

	var total int64
	if err := db.DB.Model(&models.Article{}).Scopes(models.ByUser(userID.(string))).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting articles: " + err.Error()})
		return
	}

	var articles []models.Article
	err := db.DB.Scopes(models.ByUser(userID.(string)), models.WithAuthorAndCategories).
		Order("created_at DESC").
		Limit(utils.PublicPageSize).
		Offset(utils.Offset(page, utils.PublicPageSize)).
		Find(&articles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving articles: " + err.Error()})
		return
	}

	for i := range articles {
		sanitizeArticle(&articles[i])
	}

	c.JSON(http.StatusOK, utils.NewPage(articles, page, utils.PublicPageSize, total))
}

// @Summary Get an article by ID
// @Description Retrieve a single article with its author and categories
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} map[string]string "error: Article not found"
// @Router /articles/{id} [get]
func GetArticleByID(c *gin.Context) {
	article, err := fetchArticleWithRelations(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	sanitizeArticle(&article)
	c.JSON(http.StatusOK, article)
}

// @Summary Create a new article
// @Description Create an article with categories, an optional featured image and a draft/published status
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title (max 255 characters)"
// @Param content formData string true "Content (min 100 characters)"
// @Param status formData string true "draft or published"
// @Param categories formData string true "Category IDs, JSON array or comma-separated"
// @Param slug formData string false "Explicit slug; derived from the title when omitted"
// @Param featuredImage formData file false "Featured image (jpeg/jpg/png, max 2MB)"
// @Security BearerAuth
// @Success 201 {object} models.Article
// @Failure 400 {object} utils.Response "Validation failed"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 502 {object} map[string]string "error: Image storage failed"
// @Router /articles [post]
func CreateArticle(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	input := parseArticleForm(c)
	if fields := validateArticleInput(input); fields != nil {
		utils.SendValidationError(c, fields)
		return
	}

	categories, err := loadCategories(input.CategoryIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendValidationError(c, map[string]string{"categories": "One or more categories do not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding categories: " + err.Error()})
		}
		return
	}

	// The blob goes in first: if it cannot be stored the article row must
	// not be created.
	var imageURL string
	if file, err := c.FormFile("featuredImage"); err == nil && file != nil {
		if err := storage.ValidateImage(file); err != nil {
			utils.SendValidationError(c, map[string]string{"featuredImage": err.Error()})
			return
		}
		imageURL, err = storeImage(file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Image storage failed: " + err.Error()})
			return
		}
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Title)
	}

	article := models.Article{
		UserID:        userID.(string),
		Title:         input.Title,
		Slug:          slug,
		Content:       input.Content,
		FeaturedImage: imageURL,
		Status:        input.Status,
		Categories:    categories,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&article).Error
	})
	if err != nil {
		// compensate: the row did not land, so the blob must go too
		if imageURL != "" {
			if delErr := removeImage(imageURL); delErr != nil {
				utils.LogErrorWithUser(userID, delErr, "Error deleting orphaned image after failed create")
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Article conflicts with an existing one: " + err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating article: " + err.Error()})
		return
	}

	created, err := fetchArticleWithRelations(article.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving created article: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(article.UserID, "Article created")
	sanitizeArticle(&created)
	c.JSON(http.StatusCreated, created)
}

// @Summary Update an article
// @Description Update an article; only the author or an admin may do so. The category set is replaced wholesale.
// @Tags articles
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Article ID"
// @Param title formData string true "Title (max 255 characters)"
// @Param content formData string true "Content (min 100 characters)"
// @Param status formData string true "draft or published"
// @Param categories formData string true "Category IDs, JSON array or comma-separated"
// @Param featuredImage formData file false "Replacement featured image (jpeg/jpg/png, max 2MB)"
// @Security BearerAuth
// @Success 200 {object} models.Article
// @Failure 400 {object} utils.Response "Validation failed"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to update this article"
// @Failure 404 {object} map[string]string "error: Article not found"
// @Failure 502 {object} map[string]string "error: Image storage failed"
// @Router /articles/{id} [put]
func UpdateArticle(c *gin.Context) {
	actor := middleware.ActingUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var article models.Article
	if err := db.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if !models.CanModify(actor, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this article"})
		return
	}

	input := parseArticleForm(c)
	if fields := validateArticleInput(input); fields != nil {
		utils.SendValidationError(c, fields)
		return
	}

	categories, err := loadCategories(input.CategoryIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendValidationError(c, map[string]string{"categories": "One or more categories do not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding categories: " + err.Error()})
		}
		return
	}

	// Store the replacement image before touching the row, and keep the old
	// blob until the update has committed. A failed upload leaves the
	// article referencing its original image.
	oldImage := ""
	if file, err := c.FormFile("featuredImage"); err == nil && file != nil {
		if err := storage.ValidateImage(file); err != nil {
			utils.SendValidationError(c, map[string]string{"featuredImage": err.Error()})
			return
		}
		newURL, err := storeImage(file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Image storage failed: " + err.Error()})
			return
		}
		oldImage = article.FeaturedImage
		article.FeaturedImage = newURL
	}

	article.Title = input.Title
	article.Content = input.Content
	article.Status = input.Status
	// the slug is set once at creation and never recomputed

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(&article).Error; err != nil {
			return err
		}
		return tx.Model(&article).Association("Categories").Replace(&categories)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating article: " + err.Error()})
		return
	}

	if oldImage != "" {
		if err := removeImage(oldImage); err != nil {
			utils.LogErrorWithUser(actor.UserID, err, "Error deleting replaced image")
		}
	}

	updated, err := fetchArticleWithRelations(article.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving updated article: " + err.Error()})
		return
	}

	utils.LogSuccessWithUser(actor.UserID, "Article updated")
	sanitizeArticle(&updated)
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete an article
// @Description Delete an article, its category associations and its featured image; only the author or an admin may do so
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Article deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Not authorized to delete this article"
// @Failure 404 {object} map[string]string "error: Article not found"
// @Router /articles/{id} [delete]
func DeleteArticle(c *gin.Context) {
	actor := middleware.ActingUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var article models.Article
	if err := db.DB.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if !models.CanModify(actor, article) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this article"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_categories WHERE article_id = ?", article.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting article: " + err.Error()})
		return
	}

	if article.FeaturedImage != "" {
		if err := removeImage(article.FeaturedImage); err != nil {
			utils.LogErrorWithUser(actor.UserID, err, "Error deleting image of removed article")
		}
	}

	utils.LogSuccessWithUser(actor.UserID, "Article deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
