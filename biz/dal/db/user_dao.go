package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// UserDAO handles lookups and creation of user accounts. Accounts are
// normally managed outside this service; this DAO backs the startup seed
// and ownership checks.
type UserDAO struct{}

func NewUserDAO() *UserDAO { return &UserDAO{} }

func (dao *UserDAO) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	if user == nil {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("username = ?", user.Username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: username %s", common.ErrConflict, user.Username)
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: username %s", common.ErrConflict, user.Username)
			}
			return err
		}
		return nil
	})
}

func (dao *UserDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.User, error) {
	var user model.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetByUsername(ctx context.Context, db *gorm.DB, username string) (*model.User, error) {
	var user model.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
