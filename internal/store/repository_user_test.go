package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "username", "email", "password_hash", "created_at"}).
		AddRow(user.UserID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: "hash",
	}

	created := user
	created.UserID = 1
	created.CreatedAt = time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.PasswordHash).
		WillReturnRows(userRows(created))

	got, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", got.UserID)
	}
	if got.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, got.Username)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Username: "john"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, models.User{Username: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	stored := models.User{UserID: 42, Username: "john", Email: "john@example.com", PasswordHash: "hash", CreatedAt: time.Now()}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("john").
		WillReturnRows(userRows(stored))

	found, err := repo.FindUserByUsername(ctx, "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 42 {
		t.Errorf("expected UserID=42, got %d", found.UserID)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(ctx, "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, 99)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	updated := models.User{UserID: 7, Username: "johnny", Email: "johnny@example.com", PasswordHash: "hash", CreatedAt: time.Now()}

	mock.ExpectQuery("UPDATE users").
		WithArgs("johnny", "johnny@example.com", int64(7)).
		WillReturnRows(userRows(updated))

	got, err := repo.UpdateProfile(ctx, models.User{UserID: 7, Username: "johnny", Email: "johnny@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "johnny" {
		t.Errorf("expected username johnny, got %s", got.Username)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateProfile(ctx, models.User{UserID: 404, Username: "x", Email: "x@example.com"})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateProfile_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateProfile(ctx, models.User{UserID: 7, Username: "taken", Email: "taken@example.com"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(ctx, 7, "newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs("newhash", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(ctx, 404, "newhash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
