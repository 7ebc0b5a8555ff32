// Package repository implements the GORM-backed persistence collaborators
// for users, roles, contracts, and equipment.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/equiphub/internal/auth/password"
	"github.com/skillsenselab/equiphub/internal/database"
	"github.com/skillsenselab/equiphub/internal/model"
)

// UserRepository persists user accounts. Credential hashing is a
// responsibility of this write path: Create and Update receive plaintext
// credentials and invoke the hasher before any byte reaches storage. A
// hashing failure aborts the write; no record is persisted with an
// unhashed or stale credential.
type UserRepository struct {
	db     *database.DB
	hasher password.Hasher
}

// NewUserRepository creates a user repository with its credential hasher.
func NewUserRepository(db *database.DB, hasher password.Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

// Create hashes the plaintext credential and inserts the user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	hash, err := r.hasher.Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return database.FromDatabase(err, "user")
	}
	return nil
}

// Find returns all users with their roles.
func (r *UserRepository) Find(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Find(&users).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return users, nil
}

// FindByID returns the user with the given ID, or (nil, nil) when absent.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// FindByEmail returns the user with the given email, or (nil, nil) when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return &user, nil
}

// Update applies the non-zero fields of updates to the stored user and
// returns the result, or (nil, nil) when the user does not exist. The
// credential is rehashed only when a new plaintext is supplied that
// differs from the stored hash; rewriting an already-persisted record
// never rehashes.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, updates *model.User) (*model.User, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	if updates.Name != "" {
		existing.Name = updates.Name
	}
	if updates.Email != "" {
		existing.Email = updates.Email
	}
	if updates.Permissions != nil {
		existing.Permissions = updates.Permissions
	}
	if updates.Password != "" && updates.Password != existing.Password {
		hash, hashErr := r.hasher.Hash(updates.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		existing.Password = hash
	}

	tx := r.db.WithContext(ctx)
	if updates.Roles != nil {
		if err := tx.Model(existing).Association("Roles").Replace(updates.Roles); err != nil {
			return nil, database.FromDatabase(err, "user")
		}
		existing.Roles = updates.Roles
	}
	if err := tx.Save(existing).Error; err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return existing, nil
}

// Delete removes the user with the given ID. Returns false when no such
// user exists.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return false, database.FromDatabase(res.Error, "user")
	}
	return res.RowsAffected > 0, nil
}
