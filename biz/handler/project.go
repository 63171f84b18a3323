package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/infravue/infravue/biz/service"
	"github.com/infravue/infravue/pkg/common"
)

// ProjectHandler exposes project CRUD and the dashboard aggregate.
type ProjectHandler struct {
	service *service.Service
}

func NewProjectHandler(svc *service.Service) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create creates a project owned by the acting user.
func (h *ProjectHandler) Create(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	var req createProjectRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	project, err := h.service.CreateProject(ctx, userID, req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, map[string]any{"project": project})
}

// List returns the acting user's projects.
func (h *ProjectHandler) List(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	projects, err := h.service.ListProjects(ctx, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, map[string]any{"projects": projects})
}

// Delete removes a project and cascades through its images.
func (h *ProjectHandler) Delete(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	projectID, err := parseID(c.Param("projectID"))
	if err != nil {
		RespondError(c, err)
		return
	}

	if err := h.service.DeleteProject(ctx, userID, projectID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

// Dashboard returns the user's projects and all their images in one call.
func (h *ProjectHandler) Dashboard(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	dash, err := h.service.GetDashboard(ctx, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, dash)
}
