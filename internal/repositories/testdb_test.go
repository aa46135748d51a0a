package repositories_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/hollowave/hollowave-backend/internal/models"
	"github.com/hollowave/hollowave-backend/internal/pagination"
	"gorm.io/gorm"
)

func paginationParams(cursor uint, limit int) pagination.Params {
	return pagination.Params{Cursor: cursor, Limit: limit}
}

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.MediaAttachment{},
		&models.Reaction{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Connection{},
		&models.Community{},
		&models.CommunityMember{},
		&models.JoinRequest{},
		&models.CommunityInvitation{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// createTestUser inserts a user with generated unique fields.
func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Username: fmt.Sprintf("%s_%d", name, len(name)),
		Email:    name + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", name, err)
	}
	return user
}

// createTestPost inserts a top-level post.
func createTestPost(t *testing.T, db *gorm.DB, authorID uint, content, visibility string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:   authorID,
		Content:    content,
		Visibility: visibility,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}
