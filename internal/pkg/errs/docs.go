// Package errs provides standardized error types for the storefront core.
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
// ObjectNotFoundError) guard constructors and repository lookups. The domain taxonomy
// (IllegalTransitionError, UnauthorizedError, NoFurtherTransitionError,
// InsufficientFundsError, PromoNotApplicableError) is what the state machines and the
// ledger return to their callers.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrIllegalTransition)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() for formatting and Unwrap() so that errors.Is matches the sentinel
//
// None of these errors is fatal: callers branch on the sentinel and decide what to show.
package errs
