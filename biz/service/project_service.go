package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/infravue/infravue/biz/dal/model"
	"github.com/infravue/infravue/pkg/common"
)

// CreateProject creates a project owned by the acting user.
func (s *Service) CreateProject(ctx context.Context, ownerID uint, name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrValidation)
	}

	project := &model.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if err := s.logic.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns the user's own projects, newest first.
func (s *Service) ListProjects(ctx context.Context, ownerID uint) ([]model.Project, error) {
	return s.logic.ListProjectsByOwner(ctx, ownerID)
}

// DeleteProject cascades through the project's images with the same
// lifecycle sequencing as single-image deletion, then removes the project
// record. The first image failure aborts the cascade; already-removed
// images stay removed and the project survives for a retry.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID uint) error {
	if _, err := s.authorize(ctx, userID, projectID); err != nil {
		return err
	}

	images, err := s.logic.ListImagesByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := s.Delete(ctx, userID, image.ImageID); err != nil {
			return err
		}
	}

	return s.logic.DeleteProject(ctx, projectID)
}

// Dashboard aggregates the user's projects and all of their images in one
// call so the frontend needs a single request after login.
type Dashboard struct {
	Projects []model.Project `json:"projects"`
	Images   []model.Image   `json:"images"`
}

// GetDashboard returns the user's projects with every image across them.
func (s *Service) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	projects, err := s.logic.ListProjectsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]uint, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}

	images, err := s.logic.ListImagesByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Projects: projects, Images: images}, nil
}
