package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/middleware"
	"github.com/mmynk/messbook/internal/models"
)

// errNoMess is returned to callers that have not created or joined a mess yet.
var errNoMess = &models.NotFoundError{Kind: "mess", ID: "current"}

// toConnectError maps the domain error taxonomy onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, models.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, models.ErrPermissionDenied):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// messContext returns the caller's resolved mess or a NotFound error.
func messContext(ctx context.Context) (models.MessContext, error) {
	mc, ok := middleware.GetMessContext(ctx)
	if !ok {
		return models.MessContext{}, toConnectError(errNoMess)
	}
	return mc, nil
}

// callerID returns the authenticated user or an Unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("missing caller identity"))
	}
	return userID, nil
}
