package repositories

import (
	"context"
	"errors"

	"golang-restaurant-explorer/internal/models"
)

var ErrSessionNotFound = errors.New("view session not found")

// ViewStateRepository keeps the transient UI state of view sessions
type ViewStateRepository interface {
	Get(ctx context.Context, sessionID string) (*models.ViewSnapshot, error)
	Save(ctx context.Context, snapshot *models.ViewSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
