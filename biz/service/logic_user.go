package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// --------------------- User operations ---------------------

func (l *Logic) CreateUser(ctx context.Context, user *model.User) error {
	return l.userDAO.Create(ctx, l.db, user)
}

func (l *Logic) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := l.userDAO.GetByID(ctx, l.db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", common.ErrNotFound, userID)
	}
	return user, err
}

func (l *Logic) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := l.userDAO.GetByUsername(ctx, l.db, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, username)
	}
	return user, err
}

func (l *Logic) CountUsers(ctx context.Context) (int64, error) {
	return l.userDAO.Count(ctx, l.db)
}
