// Package handler aggregates the transport-specific handler sets of the
// application.
package handler

import (
	httphandler "github.com/studenthive/student-keeper/internal/handler/http"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
)

type Handlers struct {
	HTTP *httphandler.Handler
}

func NewHandlers(services *service.Services, uploadsDir string, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: httphandler.NewHandler(services, uploadsDir, logger),
	}
}
