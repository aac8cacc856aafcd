package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrFingerprintAlreadyExists is returned when finalizing a registration
	// fails because another account already owns the username fingerprint.
	ErrFingerprintAlreadyExists = errors.New("fingerprint already exists")

	// ErrNoUserWasFound is returned when a lookup by ID or fingerprint
	// produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNoDeviceWasFound is returned when a user has no enrolled TOTP
	// device.
	ErrNoDeviceWasFound = errors.New("no totp device was found")

	// ErrDeviceAlreadyExists is returned when creating a device for a user
	// that already has one. The get-or-create path re-reads on this error.
	ErrDeviceAlreadyExists = errors.New("totp device already exists")

	// ErrItemNotFound is returned when a vault item does not exist or is
	// not owned by the requesting user. The two cases are deliberately
	// indistinguishable.
	ErrItemNotFound = errors.New("vault item was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
