package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/models"
)

func newTestStudentRepo(t *testing.T) (*studentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &studentRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	return repo, mock, db
}

var studentColumns = []string{"student_id", "first_name", "last_name", "email", "phone", "gender", "profile_pic", "user_id"}

func studentRow(s models.Student) *sqlmock.Rows {
	return sqlmock.NewRows(studentColumns).
		AddRow(s.StudentID, s.FirstName, s.LastName, s.Email, s.Phone, s.Gender, s.ProfilePic, s.UserID)
}

func TestCreateStudent_Success(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()
	student := models.Student{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", Phone: "12345",
		Gender: models.GenderFemale, UserID: 7,
	}

	created := student
	created.StudentID = 1

	mock.ExpectQuery("INSERT INTO students").
		WithArgs(student.FirstName, student.LastName, student.Email, student.Phone, student.Gender, student.ProfilePic, student.UserID).
		WillReturnRows(studentRow(created))

	got, err := repo.CreateStudent(ctx, student)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StudentID != 1 {
		t.Errorf("expected StudentID=1, got %d", got.StudentID)
	}
	if got.UserID != 7 {
		t.Errorf("expected owner 7, got %d", got.UserID)
	}
}

func TestFindStudentByID_Success(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.Student{StudentID: 5, FirstName: "Bob", LastName: "Lee", Email: "bob@example.com", Phone: "999", Gender: models.GenderMale, UserID: 7}

	mock.ExpectQuery("SELECT (.+) FROM students").
		WithArgs(int64(5), int64(7)).
		WillReturnRows(studentRow(stored))

	found, err := repo.FindStudentByID(ctx, 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.StudentID != 5 {
		t.Errorf("expected StudentID=5, got %d", found.StudentID)
	}
}

// The scoped statement matches both the identifier and the owner; a record
// owned by someone else yields the same not-found as an absent one.
func TestFindStudentByID_ForeignOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM students").
		WithArgs(int64(5), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindStudentByID(ctx, 8, 5)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestListStudents_ScopesByOwner(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows(studentColumns).
		AddRow(1, "Alice", "Smith", "alice@example.com", "123", models.GenderFemale, "", 7).
		AddRow(2, "Bob", "Lee", "bob@example.com", "456", models.GenderMale, "", 7)

	mock.ExpectQuery("SELECT (.+) FROM students WHERE user_id = (.+) ORDER BY student_id LIMIT 3 OFFSET 0").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	students, err := repo.ListStudents(ctx, 7, models.StudentFilter{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	for _, s := range students {
		if s.UserID != 7 {
			t.Errorf("record %d escaped the owner scope: owner %d", s.StudentID, s.UserID)
		}
	}
}

func TestListStudents_WithSearch(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM students WHERE user_id = (.+) AND \\(first_name ILIKE (.+) OR last_name ILIKE (.+)\\)").
		WithArgs(int64(7), "%ali%", "%ali%").
		WillReturnRows(sqlmock.NewRows(studentColumns))

	_, err := repo.ListStudents(ctx, 7, models.StudentFilter{Search: "ali", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListAllStudents_Success(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows(studentColumns).
		AddRow(1, "Alice", "Smith", "alice@example.com", "123", models.GenderFemale, "", 7)

	mock.ExpectQuery("SELECT (.+) FROM students WHERE user_id = (.+) ORDER BY student_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	students, err := repo.ListAllStudents(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
}

func TestCountStudents_Success(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT(.+) FROM students").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	count, err := repo.CountStudents(ctx, 7, models.StudentFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 8 {
		t.Errorf("expected count 8, got %d", count)
	}
}

func TestUpdateStudent_ScopedConditionalUpdate(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()
	firstName := "Alicia"

	updated := models.Student{StudentID: 5, FirstName: firstName, LastName: "Smith", Email: "alice@example.com", Phone: "123", Gender: models.GenderFemale, UserID: 7}

	// single conditional statement: SET plus WHERE on id AND owner
	mock.ExpectQuery("UPDATE students SET first_name = (.+) WHERE student_id = (.+) AND user_id = (.+) RETURNING").
		WithArgs(firstName, int64(5), int64(7)).
		WillReturnRows(studentRow(updated))

	got, err := repo.UpdateStudent(ctx, 7, 5, models.StudentUpdate{FirstName: &firstName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FirstName != firstName {
		t.Errorf("expected first name %s, got %s", firstName, got.FirstName)
	}
}

func TestUpdateStudent_ForeignOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()
	firstName := "Alicia"

	mock.ExpectQuery("UPDATE students").
		WithArgs(firstName, int64(5), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStudent(ctx, 8, 5, models.StudentUpdate{FirstName: &firstName})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestUpdateStudent_NoFieldsFallsBackToScopedRead(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.Student{StudentID: 5, FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Phone: "123", Gender: models.GenderFemale, UserID: 7}

	mock.ExpectQuery("SELECT (.+) FROM students").
		WithArgs(int64(5), int64(7)).
		WillReturnRows(studentRow(stored))

	got, err := repo.UpdateStudent(ctx, 7, 5, models.StudentUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StudentID != 5 {
		t.Errorf("expected StudentID=5, got %d", got.StudentID)
	}
}

func TestDeleteStudent_ReturnsStoredProfilePic(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("DELETE FROM students").
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"profile_pic"}).AddRow("https://media.example.com/students/abc.png"))

	profilePic, err := repo.DeleteStudent(ctx, 7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profilePic != "https://media.example.com/students/abc.png" {
		t.Errorf("unexpected profile pic: %s", profilePic)
	}
}

func TestDeleteStudent_ForeignOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newTestStudentRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("DELETE FROM students").
		WithArgs(int64(5), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteStudent(ctx, 8, 5)
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}
