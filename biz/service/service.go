package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/lock"
	"github.com/infravue/infravue/pkg/storage"
)

// Service orchestrates the asset lifecycle: it is the only component that
// sequences the physical store and the metadata records, and the sole
// writer of the file-record consistency invariant.
//
// Mutations on the same (project, filename) key are serialized through an
// in-process keyed mutex for the duration of the two-phase sequence; reads
// take no lock.
type Service struct {
	logic *Logic
	store storage.Store
	locks *lock.KeyedMutex
}

// NewService wires the lifecycle service from an open database handle and a
// store backend. Construct once at startup and share.
func NewService(db *gorm.DB, store storage.Store) *Service {
	return &Service{
		logic: NewLogic(db),
		store: store,
		locks: lock.NewKeyedMutex(),
	}
}

// Close flushes and releases the underlying database connection.
func (s *Service) Close() error {
	sqlDB, err := s.logic.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// authorize loads the project and verifies the acting user owns it. It is
// a pure read, called before every mutation and before scoped listings.
func (s *Service) authorize(ctx context.Context, userID, projectID uint) (*model.Project, error) {
	project, err := s.logic.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, fmt.Errorf("%w: project %d is not owned by user %d", common.ErrUnauthorized, projectID, userID)
	}
	return project, nil
}
