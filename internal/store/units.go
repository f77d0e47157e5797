package store

import (
	"context"
	"fmt"

	"kitchenos/models"
)

// ListUnits returns the unit vocabulary ordered by name.
func (s *Gorm) ListUnits(ctx context.Context) ([]models.Unit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var units []models.Unit
	if err := db.Order("name asc").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// CreateUnit inserts a unit.
func (s *Gorm) CreateUnit(ctx context.Context, unit *models.Unit) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(unit).Error; err != nil {
		return fmt.Errorf("create unit: %w", translate(err))
	}
	return nil
}

// UpdateUnit overwrites a unit's name and abbreviation.
func (s *Gorm) UpdateUnit(ctx context.Context, id string, unit models.Unit) (*models.Unit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var existing models.Unit
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	existing.Name = unit.Name
	existing.Abbreviation = unit.Abbreviation
	if err := db.Model(&existing).Select("name", "abbreviation", "updated_at").Updates(&existing).Error; err != nil {
		return nil, fmt.Errorf("update unit: %w", translate(err))
	}
	return &existing, nil
}

// DeleteUnit removes a unit.
func (s *Gorm) DeleteUnit(ctx context.Context, id string) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	result := db.Delete(&models.Unit{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
