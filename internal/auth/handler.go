package auth

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/server"
)

// Handler exposes the registration and login endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public auth routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/auth/register", h.register)
	r.POST("/auth/login", h.login)
}

// register handles POST /auth/register.
func (h *Handler) register(c *gin.Context) {
	var cmd RegisterCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), cmd)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, user)
}

// login handles POST /auth/login.
func (h *Handler) login(c *gin.Context) {
	var cmd LoginCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body").WithCause(err))
		return
	}

	signed, err := h.service.Login(c.Request.Context(), cmd)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"token": signed})
}
