package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/equiphub/internal/database"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/model"
)

// ContractRepository persists customer contracts and their equipment
// associations.
type ContractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		return database.FromDatabase(err, "contract")
	}
	return nil
}

func (r *ContractRepository) Find(ctx context.Context) ([]model.Contract, error) {
	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Preload("Equipments").Find(&contracts).Error; err != nil {
		return nil, database.FromDatabase(err, "contract")
	}
	return contracts, nil
}

// FindByID returns the contract with the given ID, or (nil, nil) when absent.
func (r *ContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Preload("Equipments").First(&contract, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.FromDatabase(err, "contract")
	}
	return &contract, nil
}

// Update applies the non-zero fields of updates to the stored contract
// and returns the result, or (nil, nil) when it does not exist.
func (r *ContractRepository) Update(ctx context.Context, id uuid.UUID, updates *model.Contract) (*model.Contract, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if updates.CustomerID != "" {
		existing.CustomerID = updates.CustomerID
	}
	if updates.ContractNumber != "" {
		existing.ContractNumber = updates.ContractNumber
	}
	if !updates.StartDate.IsZero() {
		existing.StartDate = updates.StartDate
	}
	if !updates.EndDate.IsZero() {
		existing.EndDate = updates.EndDate
	}
	if updates.MonthlyCost != 0 {
		existing.MonthlyCost = updates.MonthlyCost
	}
	if updates.Active != nil {
		existing.Active = updates.Active
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, database.FromDatabase(err, "contract")
	}
	return existing, nil
}

// AddEquipment links an existing equipment record to a contract and
// returns the refreshed contract. Missing contract or equipment yields a
// not-found error naming the missing resource.
func (r *ContractRepository) AddEquipment(ctx context.Context, contractID, equipmentID uuid.UUID) (*model.Contract, error) {
	contract, err := r.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, apperrors.NotFound("contract", contractID.String())
	}

	var eq model.Equipment
	err = r.db.WithContext(ctx).First(&eq, "id = ?", equipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("equipment", equipmentID.String())
	}
	if err != nil {
		return nil, database.FromDatabase(err, "equipment")
	}

	if err := r.db.WithContext(ctx).Model(contract).Association("Equipments").Append(&eq); err != nil {
		return nil, database.FromDatabase(err, "contract")
	}
	return r.FindByID(ctx, contractID)
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Contract{}, "id = ?", id)
	if res.Error != nil {
		return false, database.FromDatabase(res.Error, "contract")
	}
	return res.RowsAffected > 0, nil
}
