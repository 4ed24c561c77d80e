package postgres

import (
	"context"
	"fmt"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type alertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) History(ctx context.Context, limit int) ([]domain.AlertHistoryItem, error) {
	if limit <= 0 || limit > domain.AlertHistoryCap {
		limit = domain.AlertHistoryCap
	}

	var items []domain.AlertHistoryItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, stop_id, stop_name, route_name, depart_at, delay_seconds, completed, created_at
		FROM alert_history
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		r.db.logger.Error("Failed to load alert history", zap.Error(err))
		return nil, fmt.Errorf("load alert history: %w", err)
	}
	return items, nil
}

// Add inserts a history entry and trims everything beyond the newest
// domain.AlertHistoryCap rows.
func (r *alertRepository) Add(ctx context.Context, item domain.AlertHistoryItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO alert_history (id, stop_id, stop_name, route_name, depart_at, delay_seconds, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.StopID, item.StopName, item.RouteName,
		item.DepartAt, item.DelaySeconds, item.Completed, item.CreatedAt)
	if err != nil {
		r.db.logger.Error("Failed to insert alert history", zap.Error(err))
		return fmt.Errorf("insert alert history: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM alert_history
		WHERE id NOT IN (
			SELECT id FROM alert_history ORDER BY created_at DESC LIMIT $1
		)`, domain.AlertHistoryCap)
	if err != nil {
		return fmt.Errorf("trim alert history: %w", err)
	}

	return tx.Commit()
}

func (r *alertRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alert_history SET completed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert completed: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.db.logger.Warn("Alert to complete not found", zap.String("id", id.String()))
	}
	return nil
}
