package db

import (
	"moke/internal/models"

	"gorm.io/gorm"
)

// 级联删除规则在此处显式实现，而不是只依赖建表时的外键约束：
// 从旧库迁移过来的表不一定带约束，删除路径必须自己保证一致性。

// DeleteUser 删除用户及其全部文章、评论和两个方向的关注关系
func DeleteUser(userID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// 先删用户文章下的评论（包括他人评论）
		if err := tx.Where("post_id IN (?)",
			tx.Model(&models.Post{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR author_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// DeleteGroup 删除分组，分组下的文章保留，group_id 置空
func DeleteGroup(groupID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", groupID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}
