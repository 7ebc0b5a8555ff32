// Package auth implements the authentication core: registration, login,
// and the identity middleware guarding protected routes.
package auth

import (
	"context"

	"github.com/skillsenselab/equiphub/internal/auth/password"
	"github.com/skillsenselab/equiphub/internal/auth/token"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/validation"
)

// RegisterCommand is the validated registration input.
type RegisterCommand struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Roles    []string `json:"roles"`
}

// LoginCommand is the validated login input.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service orchestrates the registration and login flows. It holds no
// cross-request state; every operation re-reads persistence.
type Service struct {
	users    UserStore
	resolver *RoleResolver
	hasher   password.Hasher
	tokens   *token.Service
	log      *logger.Logger
}

// NewService wires the auth flow controller with its collaborators.
func NewService(users UserStore, resolver *RoleResolver, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		resolver: resolver,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.WithComponent("auth"),
	}
}

// Register creates a new user account. Flow: structural validation, then
// the duplicate-email fast path, then role resolution; both checks must
// pass before anything is persisted. The credential reaches the user store
// in plaintext and the store hashes it on write. The storage-level unique
// index on email is the real guard against a duplicate-check race.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*model.User, error) {
	if err := validation.Validate(cmd); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateUser()
	}

	roles, err := s.resolver.Resolve(ctx, cmd.Roles)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Roles:    roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered", map[string]interface{}{
		logger.FieldUserID: user.ID.String(),
		logger.FieldEmail:  user.Email,
		"roles":            user.RoleNames(),
	})
	return user, nil
}

// Login verifies a credential and issues a bearer token carrying the user
// identity. An unknown email and a wrong password map to the same HTTP
// status but stay distinct error kinds internally.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (string, error) {
	if err := validation.Validate(cmd); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.UserNotFound()
	}

	if err := s.hasher.Verify(cmd.Password, user.Password); err != nil {
		return "", apperrors.InvalidCredential()
	}

	signed, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return "", err
	}

	s.log.Info("User logged in", map[string]interface{}{
		logger.FieldUserID: user.ID.String(),
	})
	return signed, nil
}
