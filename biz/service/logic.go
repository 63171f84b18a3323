package service

import (
	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/db"
)

// Logic wraps DAO access with error mapping so the service layer only sees
// the sentinel taxonomy from pkg/common.
type Logic struct {
	db         *gorm.DB
	userDAO    *db.UserDAO
	projectDAO *db.ProjectDAO
	imageDAO   *db.ImageDAO
}

func NewLogic(database *gorm.DB) *Logic {
	return &Logic{
		db:         database,
		userDAO:    db.NewUserDAO(),
		projectDAO: db.NewProjectDAO(),
		imageDAO:   db.NewImageDAO(),
	}
}
