// Package guard holds the constructor guard embedded by aggregates, value objects,
// commands and queries so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embed it as a private
// field and call Validate from the owner's Validate method:
//
//	type TopUpAccountCommand struct {
//	    customerID kernel.UUID
//	    amount     kernel.Money
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c TopUpAccountCommand) Validate() error {
//	    return c.guard.Validate(ErrTopUpAccountCommandIsNotConstructed)
//	}
//
// The zero value reports itself as not constructed.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
