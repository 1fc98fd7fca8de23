package service

import (
	"bytes"
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/models"
)

// mailService delivers outbound mail through the configured SMTP relay.
type mailService struct {
	cfg    config.Mail
	logger *logger.Logger
}

// NewMailService constructs a MailService for the given SMTP settings.
// The connection is dialed per message; the relay sits behind the
// authenticated API surface and sees no sustained volume.
func NewMailService(cfg config.Mail, logger *logger.Logger) MailService {
	return &mailService{cfg: cfg, logger: logger}
}

// Send delivers one message, attaching the optional payload when present.
func (m *mailService) Send(ctx context.Context, message models.MailMessage) error {
	log := logger.FromContext(ctx)

	if message.To == "" || message.Subject == "" {
		return ErrInvalidDataProvided
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}
	if err := msg.To(message.To); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Body)

	if len(message.Attachment) > 0 {
		if err := msg.AttachReader(message.AttachmentName, bytes.NewReader(message.Attachment)); err != nil {
			return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
		}
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("to", message.To).Msg("mail delivery ended with error")
		return fmt.Errorf("%w: %w", ErrMailDeliveryFailed, err)
	}

	return nil
}
