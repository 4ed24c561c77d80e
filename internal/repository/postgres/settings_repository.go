package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"go.uber.org/zap"
)

// settingsKey is the single row holding the flat settings object.
const settingsKey = "app"

type settingsRepository struct {
	db *DB
}

func NewSettingsRepository(db *DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Load returns the stored settings merged over defaults; a missing row or a
// corrupt payload yields the defaults.
func (r *settingsRepository) Load(ctx context.Context) (domain.AppSettings, error) {
	settings := domain.DefaultSettings()

	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		`SELECT value FROM settings WHERE key = $1`, settingsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		r.db.logger.Error("Failed to load settings", zap.Error(err))
		return settings, fmt.Errorf("load settings: %w", err)
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		r.db.logger.Warn("Stored settings are not valid JSON, using defaults", zap.Error(err))
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings domain.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		settingsKey, raw)
	if err != nil {
		r.db.logger.Error("Failed to save settings", zap.Error(err))
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
