package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

func TestProjectDAO(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewProjectDAO()
	ctx := context.Background()

	alice := CreateTestUser(t, db, "alice")
	bob := CreateTestUser(t, db, "bob")

	t.Run("CreateAndGet", func(t *testing.T) {
		project := &model.Project{Name: "demo", Description: "d", OwnerID: alice.ID}
		if err := dao.Create(ctx, db, project); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if project.ID == 0 {
			t.Error("Expected ID to be set after creation")
		}

		found, err := dao.GetByID(ctx, db, project.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if found.OwnerID != alice.ID {
			t.Errorf("Expected owner %d, got %d", alice.ID, found.OwnerID)
		}
	})

	t.Run("ListByOwner", func(t *testing.T) {
		CreateTestProject(t, db, alice.ID, "second")
		CreateTestProject(t, db, bob.ID, "bobs")

		mine, err := dao.ListByOwner(ctx, db, alice.ID)
		if err != nil {
			t.Fatalf("ListByOwner failed: %v", err)
		}
		if len(mine) != 2 {
			t.Fatalf("Expected 2 projects for alice, got %d", len(mine))
		}
		for _, p := range mine {
			if p.OwnerID != alice.ID {
				t.Errorf("Foreign project in listing: %+v", p)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		project := CreateTestProject(t, db, alice.ID, "doomed")
		if err := dao.DeleteByID(ctx, db, project.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := dao.GetByID(ctx, db, project.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("Expected record gone, got %v", err)
		}
	})
}

func TestUserDAO(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewUserDAO()
	ctx := context.Background()

	t.Run("CreateAndLookup", func(t *testing.T) {
		user := &model.User{Username: "carol", Role: "admin"}
		if err := user.SetPassword("secret"); err != nil {
			t.Fatalf("SetPassword failed: %v", err)
		}
		if err := dao.Create(ctx, db, user); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		found, err := dao.GetByUsername(ctx, db, "carol")
		if err != nil {
			t.Fatalf("GetByUsername failed: %v", err)
		}
		if !found.CheckPassword("secret") {
			t.Error("Password verification failed")
		}
		if found.CheckPassword("wrong") {
			t.Error("Wrong password accepted")
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := dao.Create(ctx, db, &model.User{Username: "carol"})
		if !errors.Is(err, common.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("Count", func(t *testing.T) {
		count, err := dao.Count(ctx, db)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("Expected 1 user, got %d", count)
		}
	})
}
