package auth

import (
	"context"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/logger"
	"github.com/skillsenselab/equiphub/internal/model"
)

// RoleResolver maps requested role names to persisted role records before
// a user is created. It returns the resolved roles instead of mutating the
// registration payload, so the data flow stays auditable.
type RoleResolver struct {
	roles RoleStore
	log   *logger.Logger
}

// NewRoleResolver creates a role resolver.
func NewRoleResolver(roles RoleStore, log *logger.Logger) *RoleResolver {
	return &RoleResolver{roles: roles, log: log.WithComponent("roles")}
}

// Resolve looks up the requested role names. An empty request defaults to
// the baseline role. Only a total miss fails: when some of the requested
// names match existing roles, the matching subset is accepted silently.
func (r *RoleResolver) Resolve(ctx context.Context, requested []string) ([]model.Role, error) {
	names := requested
	if len(names) == 0 {
		names = []string{model.DefaultRoleName}
	}

	found, err := r.roles.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperrors.RolesNotFound(names)
	}

	if len(found) < len(names) {
		r.log.Warn("Partial role match accepted", map[string]interface{}{
			"requested": names,
			"resolved":  roleNames(found),
		})
	}
	return found, nil
}

func roleNames(roles []model.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
