// Package user holds the slim user directory the workflow needs: enough to
// resolve role holders for owner routing and approver escalation. Session
// authentication lives outside this system.
package user

import (
	"context"
	"fmt"

	"storefix/internal/domain/workflow"
)

type User struct {
	id        uint
	name      string
	role      workflow.Role
	companyID uint
	active    bool
}

func NewUser(name string, role workflow.Role, companyID uint) (*User, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	return &User{name: name, role: role, companyID: companyID, active: true}, nil
}

func ReconstructUser(id uint, name string, role workflow.Role, companyID uint, active bool) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{id: id, name: name, role: role, companyID: companyID, active: active}, nil
}

func (u *User) ID() uint            { return u.id }
func (u *User) Name() string        { return u.name }
func (u *User) Role() workflow.Role { return u.role }
func (u *User) CompanyID() uint     { return u.companyID }
func (u *User) Active() bool        { return u.active }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*User, error)
	// FindActiveByRole returns the lowest-id active holder of the role so
	// routing decisions stay deterministic.
	FindActiveByRole(ctx context.Context, role workflow.Role) (*User, error)
	// FindActiveByRoleAndCompany scopes the lookup to one vendor company.
	FindActiveByRoleAndCompany(ctx context.Context, role workflow.Role, companyID uint) (*User, error)
	Save(ctx context.Context, u *User) error
}
