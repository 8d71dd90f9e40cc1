package db

import (
	"log"
	"os"
	"sync"
	"testing"

	"moke/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testOnce sync.Once

// SetupTest 连接测试数据库并清空数据表。
// 未设置 TEST_DATABASE_URL 时跳过测试。
func SetupTest(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	testOnce.Do(func() {
		var err error
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to test database: %v", err)
		}
		if err := DB.AutoMigrate(
			&models.User{},
			&models.Group{},
			&models.Post{},
			&models.Comment{},
			&models.Follow{},
		); err != nil {
			log.Fatalf("Failed to migrate test database: %v", err)
		}
	})

	// 每个测试从空表开始
	if err := DB.Exec("TRUNCATE users, groups, posts, comments, follows RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
