package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/trip-planner/internal/catalog"
	"github.com/gdg-garage/trip-planner/internal/logger"
	"github.com/gdg-garage/trip-planner/internal/reconciler"
	"github.com/gdg-garage/trip-planner/internal/session"
)

// apiError turns domain errors into huma status errors. Errors that already
// carry a status pass through.
func apiError(ctx context.Context, log *logger.Logger, err error) error {
	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return err
	}

	var persistErr *reconciler.PersistenceError
	switch {
	case errors.Is(err, reconciler.ErrNotFound):
		return huma.Error404NotFound("Trip not found")
	case errors.Is(err, session.ErrNotFound):
		return huma.Error404NotFound("Planning session not found")
	case errors.Is(err, catalog.ErrUnknownDestination), errors.Is(err, catalog.ErrUnknownItem):
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &persistErr):
		return huma.Error503ServiceUnavailable("Trip store unavailable: " + persistErr.Error())
	}

	log.Error(ctx, "request failed", err)
	return huma.Error500InternalServerError("Internal error")
}
