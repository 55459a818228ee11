package models

import "time"

type Supplier struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"uniqueIndex" json:"code" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `gorm:"uniqueIndex" json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Products     []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
