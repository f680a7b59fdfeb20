// Package errs provides the standardized error types used across the dispatch
// service.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or violates a business rule
//   - ValueIsOutOfRangeError: a value falls outside its permitted bounds
//   - ObjectNotFoundError: an aggregate could not be found in storage
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Callers classify errors with errors.Is against the sentinels and inspect
// details with errors.As.
package errs
