package kernel

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// Role is the kind of authenticated principal performing a mutating operation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleDelivery Role = "delivery"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ParseRole converts a claim value into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleAdmin, RoleStaff, RoleDelivery:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the current principal as resolved by the authentication layer.
// Every mutating operation receives one.
type Actor struct {
	id   UUID
	role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) Validate() error {
	if a.id.Validate() != nil || a.role == "" {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// IsBackOffice reports whether the actor is admin or staff.
func (a Actor) IsBackOffice() bool {
	return a.role == RoleAdmin || a.role == RoleStaff
}

func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

func (a Actor) IsDriver() bool {
	return a.role == RoleDelivery
}

func (a Actor) IsCustomer() bool {
	return a.role == RoleCustomer
}

// Ref is the "changedBy" form recorded in histories: "<role>:<id>".
func (a Actor) Ref() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
