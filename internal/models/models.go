package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"isAdmin"`
	CreatedAt    time.Time `                                json:"-"`
}

// Product images and sizes are stored as postgres array literals in a text
// column, which works the same way on sqlite.
type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null"                 json:"name"`
	SearchName  string         `gorm:"not null;index"           json:"-"`
	Description string         `gorm:"not null"                 json:"description"`
	Price       float64        `gorm:"not null;index"           json:"price"`
	Category    string         `gorm:"not null;index"           json:"category"`
	Image       string         `gorm:"not null"                 json:"image"`
	Images      pq.StringArray `gorm:"type:text"                json:"images"`
	Rating      float64        `gorm:"not null"                 json:"rating"`
	Reviews     uint           `gorm:"not null"                 json:"reviews"`
	IsNew       bool           `gorm:"not null"                 json:"isNew"`
	IsOnSale    bool           `gorm:"not null"                 json:"isOnSale"`
	SalePrice   *float64       `                                json:"salePrice"`
	Stock       uint           `gorm:"not null"                 json:"stock"`
	Sizes       pq.StringArray `gorm:"type:text"                json:"sizes"`
	Dimensions  string         `gorm:"not null"                 json:"dimensions"`
}

// BeforeSave keeps the derived columns in step with name and images.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SearchName = strings.ToLower(p.Name)
	p.Image = ""
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return nil
}

// ChatMessage belongs to the thread of UserID. AuthorID differs from UserID
// only for admin replies.
type ChatMessage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null"           json:"user_id"`
	AuthorID     uint      `gorm:"not null"                 json:"author_id"`
	Message      string    `gorm:"not null"                 json:"message"`
	IsAdminReply bool      `gorm:"not null"                 json:"is_admin_reply"`
	CreatedAt    time.Time `gorm:"index"                    json:"created_at"`
}

type NewsItem struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string    `gorm:"not null"                 json:"title"`
	Content string    `gorm:"not null"                 json:"content"`
	Image   string    `gorm:"not null"                 json:"image"`
	Date    time.Time `gorm:"autoCreateTime;index"     json:"date"`
}

func (NewsItem) TableName() string { return "news" }

// All lists the tables migrated at startup.
func All() []any {
	return []any{&User{}, &Product{}, &ChatMessage{}, &NewsItem{}}
}
