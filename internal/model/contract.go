package model

import (
	"time"

	"gorm.io/gorm"
)

// Contract is a rental agreement binding a customer to a set of equipment.
type Contract struct {
	BaseModel
	CustomerID     string    `gorm:"not null" json:"customerId"`
	ContractNumber string    `gorm:"uniqueIndex;not null" json:"contractNumber"`
	StartDate      time.Time `gorm:"not null" json:"startDate"`
	EndDate        time.Time `gorm:"not null" json:"endDate"`
	MonthlyCost    float64   `gorm:"not null" json:"monthlyCost"`

	// Active is a pointer so partial updates can tell "not provided"
	// from an explicit false.
	Active *bool `gorm:"default:true" json:"active"`

	// Equipments are weak references to the rented units.
	Equipments []Equipment `gorm:"many2many:contract_equipments" json:"equipments"`
}

// BeforeCreate defaults Active to true when the caller left it unset.
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if c.Active == nil {
		active := true
		c.Active = &active
	}
	return nil
}
