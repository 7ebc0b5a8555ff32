// Package handler exposes the REST CRUD surface for users, roles,
// contracts, and equipment. All routes here sit behind the identity
// middleware; the handlers themselves only bind, validate, and delegate
// to the repositories.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/server"
)

// pathID parses the :id route parameter. On failure it writes the error
// response and reports false.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidFormat("id", "uuid"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body into dst, translating bind failures
// into a validation error response. Reports false when the response has
// already been written.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return false
	}
	return true
}
