package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/infravue/infravue/pkg/common"
)

// RespondOK writes a success envelope with the given payload.
func RespondOK(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

// RespondError classifies a service error and writes the matching status.
// Internal detail (paths, SQL) is never echoed for 5xx responses.
func RespondError(c *app.RequestContext, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == consts.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, common.CommonResponse{
		Code:  status,
		Msg:   msg,
		Error: msg,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return consts.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		return consts.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return consts.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return consts.StatusConflict
	default:
		// ErrStorage, ConsistencyError and everything unexpected.
		return consts.StatusInternalServerError
	}
}

// requireUserID pulls the authenticated user from the request context.
// The auth middleware guarantees it for protected routes; a missing id on
// an unprotected path is rejected here.
func requireUserID(ctx context.Context, c *app.RequestContext) (uint, bool) {
	id, ok := common.GetUserID(ctx)
	if !ok {
		c.JSON(consts.StatusUnauthorized, common.CommonResponse{
			Code:  consts.StatusUnauthorized,
			Msg:   "authentication required",
			Error: "authentication required",
		})
		return 0, false
	}
	return id, true
}

// Ping responds to health checks.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]any{"message": "pong"})
}
