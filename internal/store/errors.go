package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to register a new
	// account fails because the username or email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one account produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrStudentNotFound is returned when a scoped query or mutation
	// matches no student row — either because the identifier does not
	// exist or because the record belongs to a different owner. The two
	// cases are deliberately indistinguishable.
	ErrStudentNotFound = errors.New("student not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
