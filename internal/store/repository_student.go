package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/models"
)

// studentRepository is the PostgreSQL-backed implementation of
// [StudentRepository].
//
// Ownership scoping is enforced here, not in the handlers: every statement
// the repository issues carries a `user_id = ownerID` predicate, and
// mutations are single conditional statements so there is no window between
// an ownership check and the write.
type studentRepository struct {
	logger *logger.Logger
	db     *DB
	sq     sq.StatementBuilderType
}

// NewStudentRepository constructs a [StudentRepository] backed by the
// provided database connection and logger.
func NewStudentRepository(db *DB, logger *logger.Logger) StudentRepository {
	logger.Debug().Msg("creating student repository")
	return &studentRepository{
		db:     db,
		logger: logger,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateStudent persists a new record and returns it with the
// server-assigned identifier. The owner stamp on student.UserID is taken
// as-is; the service layer is responsible for deriving it from the
// authenticated principal.
func (r *studentRepository) CreateStudent(ctx context.Context, student models.Student) (models.Student, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createStudent,
		student.FirstName, student.LastName, student.Email, student.Phone,
		student.Gender, student.ProfilePic, student.UserID)

	created, err := scanStudent(row)
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.CreateStudent").Msg("error: scanning created student")
		return models.Student{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindStudentByID returns the record with the given identifier scoped to
// ownerID. A miss — absent row or foreign owner — yields
// [ErrStudentNotFound].
func (r *studentRepository) FindStudentByID(ctx context.Context, ownerID, studentID int64) (models.Student, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findStudentByID, studentID, ownerID)

	found, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, ErrStudentNotFound
		}

		log.Err(err).Str("func", "*studentRepository.FindStudentByID").Msg("error: scanning found student")
		return models.Student{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListStudents returns one page of records owned by ownerID. The optional
// search term matches first or last name case-insensitively.
func (r *studentRepository) ListStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	builder := r.sq.
		Select("student_id", "first_name", "last_name", "email", "phone", "gender", "COALESCE(profile_pic, '')", "user_id").
		From("students").
		Where(sq.Eq{"user_id": ownerID})
	builder = withSearch(builder, filter.Search)

	offset := uint64((filter.Page - 1) * filter.Limit)
	builder = builder.OrderBy("student_id").Limit(uint64(filter.Limit)).Offset(offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.ListStudents").Msg("error: executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	students := make([]models.Student, 0, filter.Limit)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			log.Err(err).Str("func", "*studentRepository.ListStudents").Msg("error: scanning student row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return students, nil
}

// ListAllStudents returns every record owned by ownerID ordered by
// identifier. Used by the export endpoints, which materialize the full
// scoped set.
func (r *studentRepository) ListAllStudents(ctx context.Context, ownerID int64) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	builder := r.sq.
		Select("student_id", "first_name", "last_name", "email", "phone", "gender", "COALESCE(profile_pic, '')", "user_id").
		From("students").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("student_id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*studentRepository.ListAllStudents").Msg("error: executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return students, nil
}

// CountStudents returns the number of records owned by ownerID matching
// the filter's search term.
func (r *studentRepository) CountStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) (int64, error) {
	log := logger.FromContext(ctx)

	builder := r.sq.
		Select("COUNT(*)").
		From("students").
		Where(sq.Eq{"user_id": ownerID})
	builder = withSearch(builder, filter.Search)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*studentRepository.CountStudents").Msg("error: executing count query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// UpdateStudent applies the non-nil fields of update in one conditional
// UPDATE matching both the identifier and the owner, returning the new row.
// Zero matched rows yield [ErrStudentNotFound]; the caller cannot tell an
// absent record from a foreign one.
func (r *studentRepository) UpdateStudent(ctx context.Context, ownerID, studentID int64, update models.StudentUpdate) (models.Student, error) {
	log := logger.FromContext(ctx)

	builder := r.sq.Update("students")
	changed := false

	if update.FirstName != nil {
		builder = builder.Set("first_name", *update.FirstName)
		changed = true
	}
	if update.LastName != nil {
		builder = builder.Set("last_name", *update.LastName)
		changed = true
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
		changed = true
	}
	if update.Phone != nil {
		builder = builder.Set("phone", *update.Phone)
		changed = true
	}
	if update.Gender != nil {
		builder = builder.Set("gender", *update.Gender)
		changed = true
	}
	if update.ProfilePic != nil {
		builder = builder.Set("profile_pic", sq.Expr("NULLIF(?, '')", *update.ProfilePic))
		changed = true
	}

	if !changed {
		// nothing to change: fall back to a scoped read so the caller
		// still gets not-found semantics for foreign records
		return r.FindStudentByID(ctx, ownerID, studentID)
	}

	builder = builder.
		Where(sq.Eq{"student_id": studentID, "user_id": ownerID}).
		Suffix("RETURNING student_id, first_name, last_name, email, phone, gender, COALESCE(profile_pic, ''), user_id")

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Student{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanStudent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, ErrStudentNotFound
		}

		log.Err(err).Str("func", "*studentRepository.UpdateStudent").Msg("error: scanning updated student")
		return models.Student{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteStudent removes the record in one conditional DELETE scoped by
// owner. Returns the profile_pic URL that was stored on the deleted row so
// the caller can clean up the object store, or [ErrStudentNotFound] when no
// row matched.
func (r *studentRepository) DeleteStudent(ctx context.Context, ownerID, studentID int64) (string, error) {
	log := logger.FromContext(ctx)

	var profilePic string
	err := r.db.QueryRowContext(ctx, deleteStudent, studentID, ownerID).Scan(&profilePic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrStudentNotFound
		}

		log.Err(err).Str("func", "*studentRepository.DeleteStudent").Msg("error: executing scoped delete")
		return "", fmt.Errorf("unexpected DB error: %w", err)
	}

	return profilePic, nil
}

// withSearch appends the case-insensitive substring predicate over first
// and last names when a search term is present.
func withSearch(builder sq.SelectBuilder, search string) sq.SelectBuilder {
	if search == "" {
		return builder
	}

	pattern := "%" + search + "%"
	return builder.Where(sq.Or{
		sq.ILike{"first_name": pattern},
		sq.ILike{"last_name": pattern},
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Gender, &s.ProfilePic, &s.UserID)
	return s, err
}
