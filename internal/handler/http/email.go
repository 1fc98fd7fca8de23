package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

const attachmentField = "attachment"

// sendEmail relays a message through the configured SMTP account. The
// payload is JSON, or a multipart form when an attachment is included.
func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var message models.MailMessage
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, err := mailMessageFromForm(r)
		if err != nil {
			log.Err(err).Msg("invalid mail form")
			writeError(w, r, err)
			return
		}
		message = parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
			log.Err(err).Msg("Invalid JSON was passed")
			writeError(w, r, service.ErrInvalidDataProvided)
			return
		}
	}

	if err := h.validate.Struct(message); err != nil {
		log.Err(err).Msg("mail payload failed validation")
		writeError(w, r, err)
		return
	}

	if err := h.services.MailService.Send(ctx, message); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "email sent"}, http.StatusOK)
}

func mailMessageFromForm(r *http.Request) (models.MailMessage, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return models.MailMessage{}, service.ErrInvalidDataProvided
	}

	message := models.MailMessage{
		To:      r.FormValue("to"),
		Subject: r.FormValue("subject"),
		Body:    r.FormValue("text"),
	}

	file, header, err := r.FormFile(attachmentField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return message, nil
		}
		return models.MailMessage{}, service.ErrInvalidDataProvided
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.MailMessage{}, service.ErrInvalidDataProvided
	}

	message.AttachmentName = header.Filename
	message.Attachment = data

	return message, nil
}
