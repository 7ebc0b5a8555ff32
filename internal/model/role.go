package model

// Role groups a set of permission strings under a unique name. Roles are
// looked up during registration, never implicitly created.
type Role struct {
	BaseModel
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Permissions StringList `gorm:"serializer:json" json:"permissions"`
}

// DefaultRoleName is assigned when a registration requests no roles.
const DefaultRoleName = "customer"
