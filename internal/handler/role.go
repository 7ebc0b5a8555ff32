package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server"
	"github.com/skillsenselab/equiphub/internal/validation"
)

// CreateRoleRequest is the validated input for role creation.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions"`
}

// RoleHandler serves the /roles CRUD routes.
type RoleHandler struct {
	roles *repository.RoleRepository
}

func NewRoleHandler(roles *repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// RegisterRoutes mounts the role routes on a router group.
func (h *RoleHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/roles", h.list)
	r.POST("/roles", h.create)
	r.GET("/roles/:id", h.get)
	r.PUT("/roles/:id", h.update)
	r.DELETE("/roles/:id", h.remove)
}

func (h *RoleHandler) list(c *gin.Context) {
	roles, err := h.roles.Find(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, roles)
}

func (h *RoleHandler) create(c *gin.Context) {
	var req CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	role := &model.Role{Name: req.Name, Permissions: model.StringList(req.Permissions)}
	if err := h.roles.Create(c.Request.Context(), role); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, role)
}

func (h *RoleHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	role, err := h.roles.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if role == nil {
		server.RespondWithError(c, apperrors.NotFound("role", id.String()))
		return
	}
	server.RespondOK(c, role)
}

func (h *RoleHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updates model.Role
	if !bindJSON(c, &updates) {
		return
	}

	role, err := h.roles.Update(c.Request.Context(), id, &updates)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if role == nil {
		server.RespondWithError(c, apperrors.NotFound("role", id.String()))
		return
	}
	server.RespondOK(c, role)
}

func (h *RoleHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.roles.Delete(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !deleted {
		server.RespondWithError(c, apperrors.NotFound("role", id.String()))
		return
	}
	server.RespondNoContent(c)
}
