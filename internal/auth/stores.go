package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillsenselab/equiphub/internal/model"
)

// UserStore is the persistence collaborator for user accounts. FindByEmail
// and FindByID return (nil, nil) when no record matches. Create receives a
// plaintext credential and is responsible for hashing it before the record
// is written (hash-on-write).
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

// RoleStore looks up persisted roles by name set.
type RoleStore interface {
	FindByNames(ctx context.Context, names []string) ([]model.Role, error)
}
