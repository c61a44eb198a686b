package repository

import (
	"context"
	"database/sql"

	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/repository/db"
)

// ZoneRepo stores the zone catalog: names and default run lengths.
type ZoneRepo interface {
	List(ctx context.Context) ([]models.Zone, error)
	Get(ctx context.Context, id int) (*models.Zone, error)
	Save(ctx context.Context, z models.Zone) error
	Seed(ctx context.Context, zones []models.Zone) (int, error)
}

type Repository struct {
	Zones ZoneRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Zones: NewZoneSQLite(sqlDB),
	}
}

// InitDB opens the SQLite catalog database at path.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
