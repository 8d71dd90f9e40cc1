package models

import (
	"time"
)

type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Post   Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Text   string `gorm:"type:text;not null" json:"text"`
	// 评论创建后不可编辑，只有 CreatedAt
	CreatedAt time.Time `json:"created_at"`
}
