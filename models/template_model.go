package models

import (
	"time"
)

type Template struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Category        string    `gorm:"size:100;not null" json:"category"`
	TemplateFileURL string    `gorm:"size:255;not null" json:"template_file"`
	URL             string    `gorm:"size:255;not null" json:"url"`
	CreatedAt       time.Time `json:"created_at"`
}
