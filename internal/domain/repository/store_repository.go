package repository

import (
	"context"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/google/uuid"
)

// FavoriteRepository persists the user's pinned stops, deduplicated by stop id.
type FavoriteRepository interface {
	List(ctx context.Context) ([]domain.Favorite, error)
	Save(ctx context.Context, stop domain.BusStop) error
	Remove(ctx context.Context, stopID string) error
	Exists(ctx context.Context, stopID string) (bool, error)
}

// AlertRepository persists the alert history, newest first, capped at
// domain.AlertHistoryCap entries.
type AlertRepository interface {
	History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error)
	Add(ctx context.Context, item domain.AlertHistoryItem) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository persists the flat settings object. Load merges stored
// values over defaults; Save overwrites the stored object.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.AppSettings, error)
	Save(ctx context.Context, settings domain.AppSettings) error
}
