package models

import (
	"time"

	"gorm.io/gorm"
)

const planDuration = 30 * 24 * time.Hour

type Order struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"-"`
	Plan    string `gorm:"size:100;not null" json:"plan"`
	Credits int    `gorm:"default:0" json:"credits"`
	Status  string `gorm:"size:20;default:'completed'" json:"status"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ExpiresAt == nil {
		expiry := time.Now().Add(planDuration)
		o.ExpiresAt = &expiry
	}
	return nil
}

func (o *Order) IsExpired() bool {
	return o.ExpiresAt != nil && time.Now().After(*o.ExpiresAt)
}
