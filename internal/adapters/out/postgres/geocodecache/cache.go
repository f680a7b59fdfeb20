// Package geocodecache is a Postgres-backed postal code -> coordinates
// cache shared by every resolver and every process.
package geocodecache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GeocodeDTO struct {
	PostalCode string    `gorm:"type:varchar(16);primaryKey"`
	Lat        float64   `gorm:"type:double precision;not null"`
	Lng        float64   `gorm:"type:double precision;not null"`
	ResolvedAt time.Time `gorm:"not null"`
}

func (GeocodeDTO) TableName() string {
	return "geocode_cache"
}

// GormGeocodeCache implements ports.GeocodeCache. It works outside the
// caller's transaction: a resolved postal code stays cached even when the
// run that resolved it is rolled back.
type GormGeocodeCache struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormGeocodeCache(db *gorm.DB) *GormGeocodeCache {
	return &GormGeocodeCache{db: db, now: time.Now}
}

func (c *GormGeocodeCache) Get(ctx context.Context, postalCode string) (kernel.GeoPoint, bool, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return kernel.GeoPoint{}, false, nil
	}

	var dto GeocodeDTO
	if err := c.db.WithContext(ctx).First(&dto, "postal_code = ?", postalCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.GeoPoint{}, false, nil
		}
		return kernel.GeoPoint{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	p, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("get geocode cache %q: %w", postalCode, err)
	}

	return p, true, nil
}

func (c *GormGeocodeCache) Put(ctx context.Context, postalCode string, point kernel.GeoPoint) error {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return errors.New("put geocode cache: empty postal code")
	}
	if err := point.Validate(); err != nil {
		return err
	}

	dto := GeocodeDTO{
		PostalCode: postalCode,
		Lat:        point.Lat(),
		Lng:        point.Lng(),
		ResolvedAt: c.now().UTC(),
	}
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "postal_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"lat", "lng", "resolved_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return fmt.Errorf("put geocode cache %q: %w", postalCode, err)
	}

	return nil
}
