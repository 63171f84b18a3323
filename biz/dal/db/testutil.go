package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/infravue/infravue/biz/dal/model"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate all tables
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Image{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestUser creates a test user with default values
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	dao := NewUserDAO()
	user := &model.User{
		Username: username,
		Role:     "user",
	}
	if err := user.SetPassword("test-password"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := dao.Create(context.Background(), db, user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a test project owned by the given user
func CreateTestProject(t *testing.T, db *gorm.DB, ownerID uint, name string) *model.Project {
	t.Helper()
	dao := NewProjectDAO()
	project := &model.Project{
		Name:        name,
		Description: "Test project",
		OwnerID:     ownerID,
	}
	if err := dao.Create(context.Background(), db, project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// CreateTestImage creates a test image record in the given project
func CreateTestImage(t *testing.T, db *gorm.DB, projectID uint, filename string) *model.Image {
	t.Helper()
	dao := NewImageDAO()
	image := &model.Image{
		ProjectID:   projectID,
		Filename:    filename,
		ContentType: "image/png",
		FileSize:    4,
	}
	if err := dao.Create(context.Background(), db, image); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	return image
}
