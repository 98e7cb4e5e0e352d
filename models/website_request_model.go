package models

import (
	"time"
)

const (
	RequestStatusPending    = "Pending"
	RequestStatusInProgress = "In Progress"
	RequestStatusCompleted  = "Completed"
	RequestStatusRejected   = "Rejected"
)

type WebsiteRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	WebsiteName string `gorm:"size:200;not null" json:"website_name"`
	Description string `gorm:"type:text;not null" json:"description"`

	TemplateFileURL *string `gorm:"size:255" json:"template_file"`
	Timeline        *string `gorm:"size:100" json:"timeline"`
	Features        string  `gorm:"size:255;default:''" json:"features"`
	Status          string  `gorm:"size:20;default:'Pending'" json:"status"`
	SampleURL       *string `gorm:"size:255" json:"sample_url"`
	OriginalURL     *string `gorm:"size:255" json:"original_url"`
	PreviewImageURL *string `gorm:"size:255" json:"preview_image_url"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
