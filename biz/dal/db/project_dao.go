package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
)

// ProjectDAO handles CRUD operations for projects.
type ProjectDAO struct{}

func NewProjectDAO() *ProjectDAO { return &ProjectDAO{} }

func (dao *ProjectDAO) Create(ctx context.Context, db *gorm.DB, project *model.Project) error {
	if project == nil {
		return nil
	}
	return db.WithContext(ctx).Create(project).Error
}

func (dao *ProjectDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Project, error) {
	var project model.Project
	if err := db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (dao *ProjectDAO) ListByOwner(ctx context.Context, db *gorm.DB, ownerID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (dao *ProjectDAO) DeleteByID(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}
