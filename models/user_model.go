package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;not null;unique" json:"email"`
	BusinessName string `gorm:"size:255;not null" json:"business_name"`
	Password     string `gorm:"not null" json:"-"`

	Credit int    `gorm:"default:0" json:"credit"`
	Plan   string `gorm:"size:100;default:'Free'" json:"plan"`

	IsActive bool `gorm:"default:true" json:"-"`
	IsStaff  bool `gorm:"default:false" json:"-"`

	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
