package models

import (
	"time"
)

// Group 文章分组，由管理员预置，文章可选归属一个分组
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;size:50;not null" json:"slug"` // URL 标识，如 /group/:slug
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
