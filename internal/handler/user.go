package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/equiphub/internal/auth"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server"
	"github.com/skillsenselab/equiphub/internal/validation"
)

// CreateUserRequest is the validated input for the admin user-creation
// endpoint. Roles are names, resolved against the role store.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest carries the fields an update may change. All fields
// are optional; a supplied password is re-hashed by the repository.
type UpdateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Password string   `json:"password" validate:"omitempty,min=6"`
	Roles    []string `json:"roles"`
}

// UserHandler serves the /users CRUD routes.
type UserHandler struct {
	users    *repository.UserRepository
	resolver *auth.RoleResolver
}

func NewUserHandler(users *repository.UserRepository, resolver *auth.RoleResolver) *UserHandler {
	return &UserHandler{users: users, resolver: resolver}
}

// RegisterRoutes mounts the user routes on a router group.
func (h *UserHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/users", h.list)
	r.POST("/users", h.create)
	r.GET("/users/:id", h.get)
	r.PUT("/users/:id", h.update)
	r.DELETE("/users/:id", h.remove)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.users.Find(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, users)
}

func (h *UserHandler) create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	roles, err := h.resolver.Resolve(ctx, req.Roles)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Roles:    roles,
	}
	if err := h.users.Create(ctx, user); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, user)
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if user == nil {
		server.RespondWithError(c, apperrors.NotFound("user", id.String()))
		return
	}
	server.RespondOK(c, user)
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	updates := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Roles != nil {
		roles, err := h.resolver.Resolve(ctx, req.Roles)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		updates.Roles = roles
	}

	user, err := h.users.Update(ctx, id, updates)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if user == nil {
		server.RespondWithError(c, apperrors.NotFound("user", id.String()))
		return
	}
	server.RespondOK(c, user)
}

func (h *UserHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !deleted {
		server.RespondWithError(c, apperrors.NotFound("user", id.String()))
		return
	}
	server.RespondNoContent(c)
}
