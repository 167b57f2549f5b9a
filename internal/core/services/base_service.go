package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the request logger from context or the default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// storeError normalizes a repository error. Domain kinds pass through untouched;
// anything else is logged and turned into an internal error whose cause never
// reaches the client.
func (s *BaseService) storeError(ctx context.Context, err error, msg string, keyvals ...any) error {
	if errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrValidation) {
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	return apperrors.NewInternalError(msg, err)
}

// fetchOwned resolves an entity inside the caller's ownership scope. Ids that are
// malformed, missing or owned by someone else all yield the same not-found error so
// existence never leaks across owners.
func fetchOwned[T any](ctx context.Context, s *BaseService, entity string, id string, find func() (*T, error)) (*T, error) {
	if uuid.Validate(id) != nil {
		return nil, apperrors.NewNotFoundError(entity)
	}
	found, err := find()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Owned entity not found", slog.String("entity", entity), slog.String("id", id))
			return nil, apperrors.NewNotFoundError(entity)
		}
		return nil, s.storeError(ctx, err, "failed to load "+entity, slog.String("id", id))
	}
	return found, nil
}
