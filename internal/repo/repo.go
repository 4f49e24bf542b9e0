package repo

import "gorm.io/gorm"

// GormRepo is the relational store behind users, products, chat and news.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
