package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/equiphub/internal/database"
	"github.com/skillsenselab/equiphub/internal/model"
)

// EquipmentRepository persists equipment records.
type EquipmentRepository struct {
	db *database.DB
}

func NewEquipmentRepository(db *database.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *model.Equipment) error {
	if err := r.db.WithContext(ctx).Create(eq).Error; err != nil {
		return database.FromDatabase(err, "equipment")
	}
	return nil
}

func (r *EquipmentRepository) Find(ctx context.Context) ([]model.Equipment, error) {
	var items []model.Equipment
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, database.FromDatabase(err, "equipment")
	}
	return items, nil
}

// FindByID returns the equipment with the given ID, or (nil, nil) when absent.
func (r *EquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	var eq model.Equipment
	err := r.db.WithContext(ctx).First(&eq, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.FromDatabase(err, "equipment")
	}
	return &eq, nil
}

// Update applies the non-zero fields of updates to the stored equipment
// and returns the result, or (nil, nil) when it does not exist.
func (r *EquipmentRepository) Update(ctx context.Context, id uuid.UUID, updates *model.Equipment) (*model.Equipment, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if updates.Name != "" {
		existing.Name = updates.Name
	}
	if updates.Type != "" {
		existing.Type = updates.Type
	}
	if updates.Brand != "" {
		existing.Brand = updates.Brand
	}
	if updates.Model != "" {
		existing.Model = updates.Model
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Price != 0 {
		existing.Price = updates.Price
	}
	if updates.Stock != 0 {
		existing.Stock = updates.Stock
	}
	if updates.WarrantyPeriod != "" {
		existing.WarrantyPeriod = updates.WarrantyPeriod
	}
	if !updates.ReleaseDate.IsZero() {
		existing.ReleaseDate = updates.ReleaseDate
	}
	if updates.Specifications != nil {
		existing.Specifications = updates.Specifications
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, database.FromDatabase(err, "equipment")
	}
	return existing, nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Equipment{}, "id = ?", id)
	if res.Error != nil {
		return false, database.FromDatabase(res.Error, "equipment")
	}
	return res.RowsAffected > 0, nil
}
