package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/studenthive/student-keeper/models"
)

// UserRepository handles account creation and lookup against the "users"
// table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// StudentRepository handles student records. Every method is
// ownership-scoped: reads intersect the caller-supplied filter with
// ownerID, and mutations are single conditional statements matching both
// the record identifier and the owner, so a cross-tenant access can never
// distinguish "absent" from "owned by someone else".
type StudentRepository interface {
	// CreateStudent persists a new record. The owner stamp must already be
	// set on student.UserID by the service layer.
	CreateStudent(ctx context.Context, student models.Student) (models.Student, error)

	// FindStudentByID returns the record with the given identifier if and
	// only if it belongs to ownerID; otherwise [ErrStudentNotFound].
	FindStudentByID(ctx context.Context, ownerID, studentID int64) (models.Student, error)

	// ListStudents returns one page of records owned by ownerID matching
	// the filter.
	ListStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) ([]models.Student, error)

	// CountStudents returns the number of records owned by ownerID
	// matching the filter's search term (pagination fields are ignored).
	CountStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) (int64, error)

	// ListAllStudents returns every record owned by ownerID, used by the
	// export endpoints.
	ListAllStudents(ctx context.Context, ownerID int64) ([]models.Student, error)

	// UpdateStudent applies the non-nil fields of update to the record in
	// one conditional UPDATE scoped by owner, returning the new row or
	// [ErrStudentNotFound] when no row matched.
	UpdateStudent(ctx context.Context, ownerID, studentID int64, update models.StudentUpdate) (models.Student, error)

	// DeleteStudent removes the record in one conditional DELETE scoped by
	// owner and returns the profile_pic URL that was stored on it (empty
	// when none), or [ErrStudentNotFound] when no row matched.
	DeleteStudent(ctx context.Context, ownerID, studentID int64) (string, error)
}
