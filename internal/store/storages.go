package store

import (
	"context"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
)

// Storages aggregates all repositories backed by the shared database
// connection.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	StudentRepository StudentRepository
}

// NewStorages opens the database connection and wires the repositories.
// Migrations are applied separately at startup via the migrations package.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		StudentRepository: NewStudentRepository(db, log),
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
