package model

import "time"

// Equipment is a rentable hardware unit.
type Equipment struct {
	BaseModel
	Name           string         `gorm:"not null" json:"name"`
	Type           string         `gorm:"not null" json:"type"`
	Brand          string         `gorm:"not null" json:"brand"`
	Model          string         `gorm:"not null" json:"model"`
	Description    string         `gorm:"not null" json:"description"`
	Price          float64        `gorm:"not null" json:"price"`
	Stock          int            `gorm:"not null" json:"stock"`
	WarrantyPeriod string         `gorm:"not null" json:"warrantyPeriod"`
	ReleaseDate    time.Time      `gorm:"not null" json:"releaseDate"`
	Specifications map[string]any `gorm:"serializer:json" json:"specifications"`
}
