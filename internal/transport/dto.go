package transport

import (
	"time"

	"github.com/Skotchmaster/pet_place/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
}

type VerifyResponse struct {
	User *models.User `json:"user"`
}

// ProductRequest is the full product body used by create and update.
type ProductRequest struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Category    string   `json:"category"    validate:"required"`
	Images      []string `json:"images"`
	IsNew       bool     `json:"isNew"`
	IsOnSale    bool     `json:"isOnSale"`
	SalePrice   *float64 `json:"salePrice"   validate:"omitempty,gt=0"`
	Stock       uint     `json:"stock"`
	Sizes       []string `json:"sizes"`
	Dimensions  string   `json:"dimensions"  validate:"max=200"`
}

// PatchProductRequest carries only the fields to change.
type PatchProductRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Price       *float64  `json:"price"       validate:"omitempty,gt=0"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	IsNew       *bool     `json:"isNew"`
	IsOnSale    *bool     `json:"isOnSale"`
	SalePrice   *float64  `json:"salePrice"   validate:"omitempty,gt=0"`
	Stock       *uint     `json:"stock"`
	Sizes       *[]string `json:"sizes"`
	Dimensions  *string   `json:"dimensions"  validate:"omitempty,max=200"`
}

type UpdateProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type ChatReplyRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
	UserID  uint   `json:"userId"  validate:"required"`
}

type NewsRequest struct {
	Title   string `json:"title"   validate:"required,max=300"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
