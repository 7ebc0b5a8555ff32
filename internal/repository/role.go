package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/equiphub/internal/database"
	"github.com/skillsenselab/equiphub/internal/model"
)

// RoleRepository persists roles.
type RoleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return database.FromDatabase(err, "role")
	}
	return nil
}

func (r *RoleRepository) Find(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, database.FromDatabase(err, "role")
	}
	return roles, nil
}

// FindByID returns the role with the given ID, or (nil, nil) when absent.
func (r *RoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.FromDatabase(err, "role")
	}
	return &role, nil
}

// FindByNames returns the roles whose names are in the given set. Names
// with no matching role are simply absent from the result; matching is
// the caller's concern.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, database.FromDatabase(err, "role")
	}
	return roles, nil
}

// Update applies the non-zero fields of updates to the stored role and
// returns the result, or (nil, nil) when the role does not exist.
func (r *RoleRepository) Update(ctx context.Context, id uuid.UUID, updates *model.Role) (*model.Role, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if updates.Name != "" {
		existing.Name = updates.Name
	}
	if updates.Permissions != nil {
		existing.Permissions = updates.Permissions
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, database.FromDatabase(err, "role")
	}
	return existing, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Role{}, "id = ?", id)
	if res.Error != nil {
		return false, database.FromDatabase(res.Error, "role")
	}
	return res.RowsAffected > 0, nil
}
