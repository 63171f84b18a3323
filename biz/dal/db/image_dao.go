package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// ImageDAO handles CRUD operations for image metadata. Mutations run in a
// transaction so a failure never leaves a partial record.
type ImageDAO struct{}

func NewImageDAO() *ImageDAO { return &ImageDAO{} }

// Create inserts a new image record. The (project_id, filename) pair must
// be free; a taken pair fails with ErrConflict.
func (dao *ImageDAO) Create(ctx context.Context, db *gorm.DB, image *model.Image) error {
	if image == nil {
		return nil
	}
	if image.ImageID == "" {
		image.ImageID = uuid.NewString()
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Image{}).
			Where("project_id = ? AND filename = ?", image.ProjectID, image.Filename).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", common.ErrConflict, image.Filename)
		}
		if err := tx.Create(image).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", common.ErrConflict, image.Filename)
			}
			return err
		}
		return nil
	})
}

// Rename updates the filename of an existing record. Fails with ErrNotFound
// when the image does not exist and ErrConflict when the new name is taken
// within the project.
func (dao *ImageDAO) Rename(ctx context.Context, db *gorm.DB, imageID, newFilename string) (*model.Image, error) {
	var renamed model.Image
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image model.Image
		if err := tx.Where("image_id = ?", imageID).First(&image).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: image %s", common.ErrNotFound, imageID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.Image{}).
			Where("project_id = ? AND filename = ? AND image_id <> ?", image.ProjectID, newFilename, imageID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", common.ErrConflict, newFilename)
		}

		if err := tx.Model(&model.Image{}).
			Where("image_id = ?", imageID).
			Update("filename", newFilename).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", common.ErrConflict, newFilename)
			}
			return err
		}

		image.Filename = newFilename
		renamed = image
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &renamed, nil
}

// DeleteByImageID removes the record. Deleting a missing record succeeds.
func (dao *ImageDAO) DeleteByImageID(ctx context.Context, db *gorm.DB, imageID string) error {
	return db.WithContext(ctx).Where("image_id = ?", imageID).Delete(&model.Image{}).Error
}

func (dao *ImageDAO) GetByImageID(ctx context.Context, db *gorm.DB, imageID string) (*model.Image, error) {
	var image model.Image
	if err := db.WithContext(ctx).Where("image_id = ?", imageID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (dao *ImageDAO) ListByProject(ctx context.Context, db *gorm.DB, projectID uint) ([]model.Image, error) {
	var images []model.Image
	if err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (dao *ImageDAO) ListByProjects(ctx context.Context, db *gorm.DB, projectIDs []uint) ([]model.Image, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var images []model.Image
	if err := db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
