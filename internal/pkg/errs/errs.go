package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")

	ErrIllegalTransition   = errors.New("illegal transition")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNoFurtherTransition = errors.New("no further transition")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientPoints  = errors.New("insufficient loyalty points")
	ErrPromoNotApplicable  = errors.New("promo code is not applicable")
)

func sanitize(v any) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(fmt.Sprintf("%v", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup that found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// IllegalTransitionError reports a state change the entity's transition table forbids.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
	Cause  error
}

func NewIllegalTransitionError(entity, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, To: to}
}

func NewIllegalTransitionErrorWithCause(entity, from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from, To: to, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s -> %s", ErrIllegalTransition, e.Entity, e.From, e.To), e.Cause)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UnauthorizedError reports an actor attempting an operation reserved to someone else.
type UnauthorizedError struct {
	ActorID string
	Action  string
}

func NewUnauthorizedError(actorID, action string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrUnauthorized, e.ActorID, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NoFurtherTransitionError reports an advance requested on an entity already at its last state.
type NoFurtherTransitionError struct {
	Entity string
	Status string
}

func NewNoFurtherTransitionError(entity, status string) *NoFurtherTransitionError {
	return &NoFurtherTransitionError{Entity: entity, Status: status}
}

func (e *NoFurtherTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is already %s", ErrNoFurtherTransition, e.Entity, e.Status)
}

func (e *NoFurtherTransitionError) Unwrap() error {
	return ErrNoFurtherTransition
}

// InsufficientFundsError reports a debit or redemption exceeding what is available.
// Kind is ErrInsufficientBalance or ErrInsufficientPoints.
type InsufficientFundsError struct {
	Kind      error
	Requested any
	Available any
}

func NewInsufficientBalanceError(requested, available any) *InsufficientFundsError {
	return &InsufficientFundsError{Kind: ErrInsufficientBalance, Requested: requested, Available: available}
}

func NewInsufficientPointsError(requested, available any) *InsufficientFundsError {
	return &InsufficientFundsError{Kind: ErrInsufficientPoints, Requested: requested, Available: available}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: requested %s, available %s", e.Kind, sanitize(e.Requested), sanitize(e.Available))
}

func (e *InsufficientFundsError) Unwrap() error {
	return e.Kind
}

// PromoNotApplicableError reports why a promo code cannot be applied. It matches both
// ErrPromoNotApplicable and its Reason with errors.Is.
type PromoNotApplicableError struct {
	Code   string
	Reason error
}

func NewPromoNotApplicableError(code string, reason error) *PromoNotApplicableError {
	return &PromoNotApplicableError{Code: code, Reason: reason}
}

func (e *PromoNotApplicableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPromoNotApplicable, e.Code), e.Reason)
}

func (e *PromoNotApplicableError) Unwrap() []error {
	return []error{ErrPromoNotApplicable, e.Reason}
}
