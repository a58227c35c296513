package models

import (
	"time"
)

type Role string

const (
	AdminRole Role = "ADMIN"
	UserRole  Role = "USER"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email     string    `json:"email" binding:"required,email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"password,omitempty" binding:"required,min=6"`
	UserName  string    `json:"username"`
	Bio       string    `json:"bio"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:USER"`
	Articles  []Article `json:"articles,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserWithArticleCount is one row of the admin user listing: the user plus
// how many articles they have authored.
type UserWithArticleCount struct {
	User
	ArticleCount int64 `json:"articleCount" gorm:"column:article_count"`
}

// AuthClaims identifies the acting user for the current request, as decoded
// from the JWT by the auth middleware. A nil *AuthClaims means anonymous.
type AuthClaims struct {
	UserID string
	Role   Role
}

func (a *AuthClaims) IsAdmin() bool {
	return a != nil && a.Role == AdminRole
}

func (User) TableName() string {
	return "users"
}
