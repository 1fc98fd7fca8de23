package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	validate *validator.Validate

	// uploadsDir is the legacy local uploads directory served under
	// /uploads/*; new images go to the object store.
	uploadsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, uploadsDir string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		validate:   validator.New(),
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}
