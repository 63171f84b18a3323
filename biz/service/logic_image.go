package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// --------------------- Image operations ---------------------

func (l *Logic) CreateImage(ctx context.Context, image *model.Image) error {
	return l.imageDAO.Create(ctx, l.db, image)
}

func (l *Logic) RenameImage(ctx context.Context, imageID, newFilename string) (*model.Image, error) {
	return l.imageDAO.Rename(ctx, l.db, imageID, newFilename)
}

func (l *Logic) DeleteImage(ctx context.Context, imageID string) error {
	return l.imageDAO.DeleteByImageID(ctx, l.db, imageID)
}

func (l *Logic) GetImage(ctx context.Context, imageID string) (*model.Image, error) {
	image, err := l.imageDAO.GetByImageID(ctx, l.db, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: image %s", common.ErrNotFound, imageID)
	}
	return image, err
}

func (l *Logic) ListImagesByProject(ctx context.Context, projectID uint) ([]model.Image, error) {
	return l.imageDAO.ListByProject(ctx, l.db, projectID)
}

func (l *Logic) ListImagesByProjects(ctx context.Context, projectIDs []uint) ([]model.Image, error) {
	return l.imageDAO.ListByProjects(ctx, l.db, projectIDs)
}
