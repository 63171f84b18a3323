package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/infravue/infravue/biz/service"
	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/validator"
)

// AssetHandler exposes the image lifecycle over HTTP.
type AssetHandler struct {
	service *service.Service
	uploads *validator.UploadConfig
}

func NewAssetHandler(svc *service.Service, uploads *validator.UploadConfig) *AssetHandler {
	if uploads == nil {
		uploads = validator.DefaultUploadConfig()
	}
	return &AssetHandler{service: svc, uploads: uploads}
}

// Upload handles multipart image uploads into a project.
func (h *AssetHandler) Upload(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	projectID, err := parseID(c.Param("projectID"))
	if err != nil {
		RespondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, fmt.Errorf("%w: file field is required", common.ErrValidation))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, fmt.Errorf("%w: open upload: %v", common.ErrValidation, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, fmt.Errorf("%w: read upload: %v", common.ErrStorage, err))
		return
	}

	declaredType := fileHeader.Header.Get("Content-Type")
	if err := h.uploads.Validate(int64(len(data)), declaredType, data); err != nil {
		RespondError(c, err)
		return
	}
	contentType, err := h.uploads.DetectAndValidateMimeType(data, declaredType)
	if err != nil {
		RespondError(c, err)
		return
	}

	image, err := h.service.Upload(ctx, userID, &service.UploadInput{
		ProjectID:   projectID,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, map[string]any{"image": image})
}

// List returns the images of a project.
func (h *AssetHandler) List(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	projectID, err := parseID(c.Param("projectID"))
	if err != nil {
		RespondError(c, err)
		return
	}

	images, err := h.service.ListImages(ctx, userID, projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, map[string]any{"images": images})
}

type renameRequest struct {
	NewFilename string `json:"new_filename"`
}

// Rename updates an image's filename. A requested name without an
// extension inherits the extension of the current name.
func (h *AssetHandler) Rename(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	imageID := c.Param("imageID")

	var req renameRequest
	if err := c.BindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	image, err := h.service.GetImage(ctx, userID, imageID)
	if err != nil {
		RespondError(c, err)
		return
	}

	target := normalizeRenameTarget(image.Filename, req.NewFilename)
	renamed, err := h.service.Rename(ctx, userID, imageID, target)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, map[string]any{"image": renamed})
}

// Delete removes an image. Deleting an already-deleted id succeeds.
func (h *AssetHandler) Delete(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}
	if err := h.service.Delete(ctx, userID, c.Param("imageID")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}

// GetFile streams stored image content back to the client.
func (h *AssetHandler) GetFile(ctx context.Context, c *app.RequestContext) {
	userID, ok := requireUserID(ctx, c)
	if !ok {
		return
	}

	image, reader, err := h.service.GetImageFile(ctx, userID, c.Param("imageID"))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		RespondError(c, fmt.Errorf("%w: read file: %v", common.ErrStorage, err))
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = consts.MIMEApplicationOctetStream
	}
	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", image.Filename))
	c.Data(consts.StatusOK, contentType, content)
}

func normalizeRenameTarget(current, requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return requested
	}
	if filepath.Ext(requested) == "" {
		return requested + filepath.Ext(current)
	}
	return requested
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", common.ErrValidation, raw)
	}
	return uint(id), nil
}
