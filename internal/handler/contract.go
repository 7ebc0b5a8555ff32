package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/model"
	"github.com/skillsenselab/equiphub/internal/repository"
	"github.com/skillsenselab/equiphub/internal/server"
	"github.com/skillsenselab/equiphub/internal/validation"
)

// CreateContractRequest is the validated input for contract creation.
type CreateContractRequest struct {
	CustomerID     string    `json:"customerId" validate:"required"`
	ContractNumber string    `json:"contractNumber" validate:"required"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	EndDate        time.Time `json:"endDate" validate:"required"`
	MonthlyCost    float64   `json:"monthlyCost" validate:"required"`
	Active         *bool     `json:"active"`
}

// AddEquipmentRequest names the equipment to link to a contract.
type AddEquipmentRequest struct {
	EquipmentID string `json:"equipmentId" validate:"required,uuid"`
}

// ContractHandler serves the /contracts CRUD routes and the
// contract-equipment association.
type ContractHandler struct {
	contracts *repository.ContractRepository
}

func NewContractHandler(contracts *repository.ContractRepository) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// RegisterRoutes mounts the contract routes on a router group.
func (h *ContractHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/contracts", h.list)
	r.POST("/contracts", h.create)
	r.GET("/contracts/:id", h.get)
	r.PUT("/contracts/:id", h.update)
	r.DELETE("/contracts/:id", h.remove)
	r.PUT("/contracts/:id/add-equipment", h.addEquipment)
}

func (h *ContractHandler) list(c *gin.Context) {
	contracts, err := h.contracts.Find(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, contracts)
}

func (h *ContractHandler) create(c *gin.Context) {
	var req CreateContractRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	contract := &model.Contract{
		CustomerID:     req.CustomerID,
		ContractNumber: req.ContractNumber,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MonthlyCost:    req.MonthlyCost,
		Active:         req.Active,
	}
	if err := h.contracts.Create(c.Request.Context(), contract); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, contract)
}

func (h *ContractHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	contract, err := h.contracts.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if contract == nil {
		server.RespondWithError(c, apperrors.NotFound("contract", id.String()))
		return
	}
	server.RespondOK(c, contract)
}

func (h *ContractHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updates model.Contract
	if !bindJSON(c, &updates) {
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), id, &updates)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if contract == nil {
		server.RespondWithError(c, apperrors.NotFound("contract", id.String()))
		return
	}
	server.RespondOK(c, contract)
}

func (h *ContractHandler) addEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AddEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	equipmentID, err := uuid.Parse(req.EquipmentID)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidFormat("equipmentId", "uuid"))
		return
	}

	contract, err := h.contracts.AddEquipment(c.Request.Context(), id, equipmentID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, contract)
}

func (h *ContractHandler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.contracts.Delete(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !deleted {
		server.RespondWithError(c, apperrors.NotFound("contract", id.String()))
		return
	}
	server.RespondNoContent(c)
}
