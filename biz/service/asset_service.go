package service

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/storage"
	"github.com/infravue/infravue/pkg/validator"
)

// UploadInput captures metadata and payload for an image upload.
type UploadInput struct {
	ProjectID   uint
	Filename    string
	ContentType string
	Data        []byte
}

// Upload stores the file and then creates its metadata record. If the
// record cannot be created the stored file is removed again, so a failed
// upload leaves no trace. The (project, filename) key is held exclusively
// for the whole sequence.
func (s *Service) Upload(ctx context.Context, userID uint, input *UploadInput) (*model.Image, error) {
	if input == nil {
		return nil, errors.New("input required")
	}
	if err := validator.ValidateFilename(input.Filename); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, input.ProjectID); err != nil {
		return nil, err
	}

	key := storage.Key(input.ProjectID, input.Filename)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	if err := s.store.Put(ctx, input.ProjectID, input.Filename, input.Data); err != nil {
		return nil, err
	}

	image := &model.Image{
		ProjectID:   input.ProjectID,
		Filename:    input.Filename,
		ContentType: input.ContentType,
		FileSize:    int64(len(input.Data)),
	}
	if err := s.logic.CreateImage(ctx, image); err != nil {
		// Remove the now-orphaned file.
		if delErr := s.store.Delete(ctx, input.ProjectID, input.Filename); delErr != nil {
			cerr := &common.ConsistencyError{
				Op:        "upload",
				ImageID:   image.ImageID,
				ProjectID: input.ProjectID,
				Expected:  "",
				Actual:    input.Filename,
				Cause:     err,
			}
			hlog.CtxErrorf(ctx, "upload compensation failed (%v): %v", delErr, cerr)
			return nil, cerr
		}
		return nil, err
	}

	return image, nil
}

// Rename moves the file first and then updates the record. If the record
// update fails the file is moved back; if that also fails the caller gets
// a ConsistencyError naming both the expected and the actual on-disk name.
// Renaming an image to its current name is a no-op.
func (s *Service) Rename(ctx context.Context, userID uint, imageID, newFilename string) (*model.Image, error) {
	image, err := s.logic.GetImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, image.ProjectID); err != nil {
		return nil, err
	}
	if err := validator.ValidateFilename(newFilename); err != nil {
		return nil, err
	}
	if newFilename == image.Filename {
		return image, nil
	}

	oldKey := storage.Key(image.ProjectID, image.Filename)
	newKey := storage.Key(image.ProjectID, newFilename)
	unlock := s.locks.LockPair(oldKey, newKey)
	defer unlock()

	if err := s.store.Rename(ctx, image.ProjectID, image.Filename, newFilename); err != nil {
		return nil, err
	}

	renamed, err := s.logic.RenameImage(ctx, imageID, newFilename)
	if err != nil {
		// Move the file back so record and disk still agree.
		if backErr := s.store.Rename(ctx, image.ProjectID, newFilename, image.Filename); backErr != nil {
			cerr := &common.ConsistencyError{
				Op:        "rename",
				ImageID:   imageID,
				ProjectID: image.ProjectID,
				Expected:  image.Filename,
				Actual:    newFilename,
				Cause:     err,
			}
			hlog.CtxErrorf(ctx, "rename compensation failed (%v): %v", backErr, cerr)
			return nil, cerr
		}
		return nil, err
	}

	return renamed, nil
}

// Delete removes the file and then the record. A missing image id or a
// missing file is already-deleted, not an error. If the record removal
// fails after the file is gone the caller gets a ConsistencyError and can
// retry; the retry will find the file absent and only remove the record.
func (s *Service) Delete(ctx context.Context, userID uint, imageID string) error {
	image, err := s.logic.GetImage(ctx, imageID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if _, err := s.authorize(ctx, userID, image.ProjectID); err != nil {
		return err
	}

	key := storage.Key(image.ProjectID, image.Filename)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	if err := s.store.Delete(ctx, image.ProjectID, image.Filename); err != nil {
		return err
	}

	if err := s.logic.DeleteImage(ctx, imageID); err != nil {
		cerr := &common.ConsistencyError{
			Op:        "delete",
			ImageID:   imageID,
			ProjectID: image.ProjectID,
			Expected:  image.Filename,
			Actual:    "",
			Cause:     err,
		}
		hlog.CtxErrorf(ctx, "delete left dangling record: %v", cerr)
		return cerr
	}

	return nil
}

// ListImages returns the project's images, newest first. Read-only,
// ownership-checked, no locking.
func (s *Service) ListImages(ctx context.Context, userID, projectID uint) ([]model.Image, error) {
	if _, err := s.authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.logic.ListImagesByProject(ctx, projectID)
}

// GetImage returns the metadata record after an ownership check.
func (s *Service) GetImage(ctx context.Context, userID uint, imageID string) (*model.Image, error) {
	image, err := s.logic.GetImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, image.ProjectID); err != nil {
		return nil, err
	}
	return image, nil
}

// GetImageFile returns the record and a reader over the stored content.
// The caller must close the reader.
func (s *Service) GetImageFile(ctx context.Context, userID uint, imageID string) (*model.Image, io.ReadCloser, error) {
	image, err := s.logic.GetImage(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.authorize(ctx, userID, image.ProjectID); err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Open(ctx, image.ProjectID, image.Filename)
	if err != nil {
		return nil, nil, err
	}
	return image, reader, nil
}
