package models

import (
	"time"

	"gorm.io/gorm"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

type Article struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string        `json:"userId" gorm:"column:user_id;index"`
	User          User          `json:"author" gorm:"foreignKey:UserID"`
	Title         string        `json:"title" gorm:"size:255;not null"`
	Slug          string        `json:"slug" gorm:"index"`
	Content       string        `json:"content" gorm:"type:text;not null"`
	FeaturedImage string        `json:"featuredImage,omitempty" gorm:"column:featured_image"`
	Status        ArticleStatus `json:"status" gorm:"type:varchar(20);default:draft;index"`
	Categories    []Category    `json:"categories" gorm:"many2many:article_categories;"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (Article) TableName() string {
	return "articles"
}

// Published restricts a query to published articles.
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", StatusPublished)
}

// ByUser restricts a query to articles authored by the given user.
func ByUser(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// WithAuthorAndCategories eager-loads the author and the category set so
// listings do not fan out into one query per row.
func WithAuthorAndCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Categories")
}

// CanModify reports whether the acting user may edit or delete the article:
// the author, or an admin. Anonymous callers can never modify.
func CanModify(actor *AuthClaims, article Article) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == article.UserID || actor.IsAdmin()
}
