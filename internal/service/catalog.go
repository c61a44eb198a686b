package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/logger"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/repository"
)

var errNoCatalog = errors.New("zone catalog is not configured")

// CatalogService validates and stores zone catalog entries.
type CatalogService struct {
	repo    repository.ZoneRepo
	observe ResponseObserver
	log     *logger.Logger
}

func NewCatalogService(repo repository.ZoneRepo, observe ResponseObserver, log *logger.Logger) *CatalogService {
	if observe == nil {
		observe = func(string, bool) {}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogService{repo: repo, observe: observe, log: log}
}

// ListZones returns every catalog entry ordered by id.
func (s *CatalogService) ListZones(ctx context.Context) gw.Response {
	if s.repo == nil {
		return s.fail(opListZones, msgListZonesFailed, errNoCatalog)
	}
	zones, err := s.repo.List(ctx)
	if err != nil {
		return s.fail(opListZones, msgListZonesFailed, err)
	}
	if zones == nil {
		zones = []models.Zone{}
	}
	s.observe(opListZones, true)
	return gw.Succeeded(msgZonesRetrieved, zones)
}

// SaveZone creates or replaces the entry for id.
func (s *CatalogService) SaveZone(ctx context.Context, idIn any, p ZoneParams) gw.Response {
	z, err := validateZone(idIn, p)
	if err != nil {
		return s.fail(opSaveZone, msgSaveZoneFailed, err)
	}
	if s.repo == nil {
		return s.fail(opSaveZone, msgSaveZoneFailed, errNoCatalog)
	}
	if err := s.repo.Save(ctx, z); err != nil {
		return s.fail(opSaveZone, msgSaveZoneFailed, err)
	}
	s.observe(opSaveZone, true)
	s.log.Infow("zone_saved", "zone", z.ID, "name", z.Name, "default_minutes", z.DefaultMinutes)
	return gw.Succeeded(msgZoneSaved, z)
}

// Seed inserts the configured zones that are not in the catalog yet.
// Existing rows keep any edits made through SaveZone.
func (s *CatalogService) Seed(ctx context.Context, zones []models.Zone) (int, error) {
	if s.repo == nil || len(zones) == 0 {
		return 0, nil
	}
	valid := make([]models.Zone, 0, len(zones))
	for _, z := range zones {
		v, err := validateZone(z.ID, ZoneParams{Name: z.Name, DefaultMinutes: z.DefaultMinutes})
		if err != nil {
			return 0, err
		}
		valid = append(valid, v)
	}
	return s.repo.Seed(ctx, valid)
}

func validateZone(idIn any, p ZoneParams) (models.Zone, error) {
	id, err := positiveInt("id", idIn)
	if err != nil {
		return models.Zone{}, err
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Zone{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	minutes, err := positiveInt("defaultMinutes", p.DefaultMinutes)
	if err != nil {
		return models.Zone{}, err
	}
	return models.Zone{ID: id, Name: name, DefaultMinutes: minutes}, nil
}

func (s *CatalogService) fail(op, msg string, err error) gw.Response {
	s.observe(op, false)
	if errors.Is(err, ErrInvalidArgument) {
		s.log.Infow("request_rejected", "operation", op, "err", err)
	} else {
		s.log.Errorw("request_failed", "operation", op, "err", err)
	}
	return gw.Failed(msg, err.Error(), err)
}
