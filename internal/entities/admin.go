package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	RoleManager    AdminRole = "MANAGER"
	RoleAdmin      AdminRole = "ADMIN"
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
)

var roleRank = map[AdminRole]int{
	RoleManager:    1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

func (r AdminRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast сравнивает роли по иерархии MANAGER < ADMIN < SUPER_ADMIN.
func (r AdminRole) AtLeast(floor AdminRole) bool {
	return roleRank[r] >= roleRank[floor]
}

type Admin struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrForbidden     = errors.New("insufficient role")
)
