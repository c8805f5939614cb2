package models

import "time"

// Role distinguishes administrative accounts from ordinary customers.
type Role int

const (
	RoleAdmin    Role = 0
	RoleCustomer Role = 1
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Account represents an authentication identity with a role.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"column:password;type:varchar(255)"` // bcrypt digest, never serialized
	Role         Role      `json:"role" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
