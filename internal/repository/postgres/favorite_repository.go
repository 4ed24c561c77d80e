package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Yoon-jae-min/busalert/internal/domain"
	"github.com/Yoon-jae-min/busalert/internal/domain/repository"
	"go.uber.org/zap"
)

type favoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

type favoriteRow struct {
	StopID    string    `db:"stop_id"`
	Name      string    `db:"name"`
	Number    *string   `db:"number"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	Address   *string   `db:"address"`
	CityCode  string    `db:"city_code"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *favoriteRepository) List(ctx context.Context) ([]domain.Favorite, error) {
	var rows []favoriteRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT stop_id, name, number, latitude, longitude, address, city_code, created_at
		FROM favorites
		ORDER BY created_at DESC`)
	if err != nil {
		r.db.logger.Error("Failed to list favorites", zap.Error(err))
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, domain.Favorite{
			Stop: domain.BusStop{
				ID:        row.StopID,
				Name:      row.Name,
				Number:    row.Number,
				Latitude:  row.Latitude,
				Longitude: row.Longitude,
				Address:   row.Address,
				CityCode:  row.CityCode,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return favorites, nil
}

// Save inserts a favorite; saving an already-favorited stop is a no-op.
func (r *favoriteRepository) Save(ctx context.Context, stop domain.BusStop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (stop_id, name, number, latitude, longitude, address, city_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stop_id) DO NOTHING`,
		stop.ID, stop.Name, stop.Number, stop.Latitude, stop.Longitude, stop.Address, stop.CityCode)
	if err != nil {
		r.db.logger.Error("Failed to save favorite",
			zap.String("stop_id", stop.ID),
			zap.Error(err))
		return fmt.Errorf("save favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, stopID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE stop_id = $1`, stopID)
	if err != nil {
		r.db.logger.Error("Failed to remove favorite",
			zap.String("stop_id", stopID),
			zap.Error(err))
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, stopID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE stop_id = $1)`, stopID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}
