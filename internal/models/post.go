package models

import (
	"time"
)

type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	GroupID *uint  `gorm:"index" json:"group_id"` // Nullable，删除分组时置空，文章保留
	Group   *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Text    string `gorm:"type:text;not null" json:"text"`
	Image   string `json:"image"` // 图片存储路径（相对 media 前缀），可为空
	// CreatedAt 由服务端生成，创建后不再变更
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}
