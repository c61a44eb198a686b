package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"irrigation_gateway/internal/models"
)

type ZoneSQLite struct {
	db *sql.DB
}

func NewZoneSQLite(db *sql.DB) *ZoneSQLite {
	return &ZoneSQLite{db: db}
}

// Ensure implementation of ZoneRepo interface at compile time.
var _ ZoneRepo = (*ZoneSQLite)(nil)

const (
	upsertZoneSQL = `
		INSERT INTO zones (id, name, default_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			default_minutes=excluded.default_minutes
	`

	insertZoneIfMissingSQL = `
		INSERT INTO zones (id, name, default_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	selectZonesSQL    = `SELECT id, name, default_minutes FROM zones ORDER BY id ASC`
	selectZoneByIDSQL = `SELECT id, name, default_minutes FROM zones WHERE id = ?`
)

// List returns every catalog entry ordered by zone number.
func (r *ZoneSQLite) List(ctx context.Context) ([]models.Zone, error) {
	rows, err := r.db.QueryContext(ctx, selectZonesSQL)
	if err != nil {
		return nil, fmt.Errorf("select zones: %w", err)
	}
	defer rows.Close()

	out := make([]models.Zone, 0, 16)
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.DefaultMinutes); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one zone. Returns (nil, nil) if the zone is not in the catalog.
func (r *ZoneSQLite) Get(ctx context.Context, id int) (*models.Zone, error) {
	var z models.Zone
	err := r.db.QueryRowContext(ctx, selectZoneByIDSQL, id).Scan(&z.ID, &z.Name, &z.DefaultMinutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select zone %d: %w", id, err)
	}
	return &z, nil
}

// Save inserts or replaces a zone.
func (r *ZoneSQLite) Save(ctx context.Context, z models.Zone) error {
	if _, err := r.db.ExecContext(ctx, upsertZoneSQL, z.ID, z.Name, z.DefaultMinutes); err != nil {
		return fmt.Errorf("upsert zone %d: %w", z.ID, err)
	}
	return nil
}

// Seed inserts zones that are not in the catalog yet and leaves existing rows alone,
// so edits made through the API survive restarts. Returns how many rows were added.
func (r *ZoneSQLite) Seed(ctx context.Context, zones []models.Zone) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	added := 0
	for _, z := range zones {
		res, err := tx.ExecContext(ctx, insertZoneIfMissingSQL, z.ID, z.Name, z.DefaultMinutes)
		if err != nil {
			return 0, fmt.Errorf("seed zone %d: %w", z.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed transaction: %w", err)
	}
	return added, nil
}
