package service

import (
	"context"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/store"
)

// Services aggregates every service the handlers depend on.
type Services struct {
	AuthService    AuthService
	StudentService StudentService
	MediaService   MediaService
	ExportService  ExportService
	PaymentService PaymentService
	MailService    MailService
}

// NewServices wires all services against the shared storages and
// configuration.
func NewServices(ctx context.Context, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	mediaService, err := NewMediaService(ctx, cfg.Media, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.App, logger),
		StudentService: NewStudentService(storages.StudentRepository, mediaService, logger),
		MediaService:   mediaService,
		ExportService:  NewExportService(storages.StudentRepository, logger),
		PaymentService: NewPaymentService(cfg.Payment, logger),
		MailService:    NewMailService(cfg.Mail, logger),
	}, nil
}
