package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server"
	"github.com/skillsenselab/equiphub/internal/validation"
)

// CreateEquipmentRequest is the validated input for equipment creation.
type CreateEquipmentRequest struct {
	Name           string         `json:"name" validate:"required"`
	Type           string         `json:"type" validate:"required"`
	Brand          string         `json:"brand" validate:"required"`
	Model          string         `json:"model" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Price          float64        `json:"price" validate:"required"`
	Stock          int            `json:"stock" validate:"required"`
	WarrantyPeriod string         `json:"warrantyPeriod" validate:"required"`
	ReleaseDate    time.Time      `json:"releaseDate" validate:"required"`
	Specifications map[string]any `json:"specifications"`
}

// EquipmentHandler serves the /equipments CRUD routes.
type EquipmentHandler struct {
	equipment *repository.EquipmentRepository
}

func NewEquipmentHandler(equipment *repository.EquipmentRepository) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// RegisterRoutes mounts the equipment routes on a router group.
func (h *EquipmentHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/equipments", h.list)
	r.POST("/equipments", h.create)
	r.GET("/equipments/:id", h.get)
	r.PUT("/equipments/:id", h.update)
	r.DELETE("/equipments/:id", h.remove)
}

func (h *EquipmentHandler) list(c *gin.Context) {
	items, err := h.equipment.Find(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, items)
}

func (h *EquipmentHandler) create(c *gin.Context) {
	var req CreateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	eq := &model.Equipment{
		Name:           req.Name,
		Type:           req.Type,
		Brand:          req.Brand,
		Model:          req.Model,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		WarrantyPeriod: req.WarrantyPeriod,
		ReleaseDate:    req.ReleaseDate,
		Specifications: req.Specifications,
	}
	if err := h.equipment.Create(c.Request.Context(), eq); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, eq)
}

func (h *EquipmentHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	eq, err := h.equipment.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if eq == nil {
		server.RespondWithError(c, apperrors.NotFound("equipment", id.String()))
		return
	}
	server.RespondOK(c, eq)
}

func (h *EquipmentHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updates model.Equipment
	if !bindJSON(c, &updates) {
		return
	}

	eq, err := h.equipment.Update(c.Request.Context(), id, &updates)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if eq == nil {
		server.RespondWithError(c, apperrors.NotFound("equipment", id.String()))
		return
	}
	server.RespondOK(c, eq)
}

func (h *EquipmentHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.equipment.Delete(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !deleted {
		server.RespondWithError(c, apperrors.NotFound("equipment", id.String()))
		return
	}
	server.RespondNoContent(c)
}
