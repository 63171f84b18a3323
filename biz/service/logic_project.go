package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// --------------------- Project operations ---------------------

func (l *Logic) CreateProject(ctx context.Context, project *model.Project) error {
	return l.projectDAO.Create(ctx, l.db, project)
}

func (l *Logic) GetProject(ctx context.Context, projectID uint) (*model.Project, error) {
	project, err := l.projectDAO.GetByID(ctx, l.db, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %d", common.ErrNotFound, projectID)
	}
	return project, err
}

func (l *Logic) ListProjectsByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	return l.projectDAO.ListByOwner(ctx, l.db, ownerID)
}

func (l *Logic) DeleteProject(ctx context.Context, projectID uint) error {
	return l.projectDAO.DeleteByID(ctx, l.db, projectID)
}
