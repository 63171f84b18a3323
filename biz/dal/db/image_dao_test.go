package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

func TestImageDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewImageDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "alice")
	project := CreateTestProject(t, db, user.ID, "demo")

	t.Run("Success", func(t *testing.T) {
		image := &model.Image{
			ProjectID:   project.ID,
			Filename:    "cat.png",
			ContentType: "image/png",
			FileSize:    12,
		}
		if err := dao.Create(ctx, db, image); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if image.ImageID == "" {
			t.Error("Expected ImageID to be assigned")
		}

		found, err := dao.GetByImageID(ctx, db, image.ImageID)
		if err != nil {
			t.Fatalf("GetByImageID failed: %v", err)
		}
		if found.Filename != "cat.png" {
			t.Errorf("Expected filename cat.png, got %s", found.Filename)
		}
	})

	t.Run("DuplicateFilenameInProject", func(t *testing.T) {
		err := dao.Create(ctx, db, &model.Image{ProjectID: project.ID, Filename: "cat.png"})
		if !errors.Is(err, common.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}

		var count int64
		db.Model(&model.Image{}).Where("project_id = ? AND filename = ?", project.ID, "cat.png").Count(&count)
		if count != 1 {
			t.Fatalf("Expected exactly 1 record, got %d", count)
		}
	})

	t.Run("SameFilenameInOtherProject", func(t *testing.T) {
		other := CreateTestProject(t, db, user.ID, "other")
		if err := dao.Create(ctx, db, &model.Image{ProjectID: other.ID, Filename: "cat.png"}); err != nil {
			t.Fatalf("Create in other project failed: %v", err)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		if err := dao.Create(ctx, db, nil); err != nil {
			t.Errorf("Expected nil error for nil entity, got %v", err)
		}
	})
}

func TestImageDAO_Rename(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewImageDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "alice")
	project := CreateTestProject(t, db, user.ID, "demo")
	image := CreateTestImage(t, db, project.ID, "cat.png")
	CreateTestImage(t, db, project.ID, "taken.png")

	t.Run("Success", func(t *testing.T) {
		renamed, err := dao.Rename(ctx, db, image.ImageID, "dog.png")
		if err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if renamed.Filename != "dog.png" {
			t.Errorf("Expected dog.png, got %s", renamed.Filename)
		}

		found, err := dao.GetByImageID(ctx, db, image.ImageID)
		if err != nil {
			t.Fatalf("GetByImageID failed: %v", err)
		}
		if found.Filename != "dog.png" {
			t.Errorf("Expected persisted filename dog.png, got %s", found.Filename)
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		_, err := dao.Rename(ctx, db, image.ImageID, "taken.png")
		if !errors.Is(err, common.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}

		found, _ := dao.GetByImageID(ctx, db, image.ImageID)
		if found.Filename != "dog.png" {
			t.Errorf("Record changed after failed rename: %s", found.Filename)
		}
	})

	t.Run("SameName", func(t *testing.T) {
		if _, err := dao.Rename(ctx, db, image.ImageID, "dog.png"); err != nil {
			t.Fatalf("Rename to current name failed: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := dao.Rename(ctx, db, "no-such-id", "x.png")
		if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestImageDAO_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewImageDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "alice")
	project := CreateTestProject(t, db, user.ID, "demo")
	image := CreateTestImage(t, db, project.ID, "cat.png")

	if err := dao.DeleteByImageID(ctx, db, image.ImageID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := dao.GetByImageID(ctx, db, image.ImageID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Expected record gone, got %v", err)
	}

	// Idempotent
	if err := dao.DeleteByImageID(ctx, db, image.ImageID); err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}
	if err := dao.DeleteByImageID(ctx, db, "never-existed"); err != nil {
		t.Fatalf("Delete of unknown id failed: %v", err)
	}
}

func TestImageDAO_ListByProject(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewImageDAO()
	ctx := context.Background()

	user := CreateTestUser(t, db, "alice")
	p1 := CreateTestProject(t, db, user.ID, "one")
	p2 := CreateTestProject(t, db, user.ID, "two")
	CreateTestImage(t, db, p1.ID, "a.png")
	CreateTestImage(t, db, p1.ID, "b.png")
	CreateTestImage(t, db, p2.ID, "c.png")

	images, err := dao.ListByProject(ctx, db, p1.ID)
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}

	all, err := dao.ListByProjects(ctx, db, []uint{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("ListByProjects failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 images, got %d", len(all))
	}

	none, err := dao.ListByProjects(ctx, db, nil)
	if err != nil {
		t.Fatalf("ListByProjects(nil) failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("Expected no images, got %d", len(none))
	}
}
