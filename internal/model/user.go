package model

// User is an account holder. A user owns exactly one credential, stored
// only as a bcrypt hash, and references zero or more roles by identifier.
type User struct {
	BaseModel
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Password holds the bcrypt hash of the credential. It is excluded
	// from every JSON representation of a user.
	Password string `gorm:"not null" json:"-"`

	Permissions StringList `gorm:"serializer:json" json:"permissions"`

	// Roles are weak references: role existence is not enforced
	// transactionally when a user is written.
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`
}

// StringList is a JSON-serialized string slice column.
type StringList []string

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
