package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/store"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPaymentSignatureInvalid: http.StatusBadRequest,
	service.ErrImageUploadFailed:       http.StatusInternalServerError,
	service.ErrPaymentOrderFailed:      http.StatusInternalServerError,
	service.ErrMailDeliveryFailed:      http.StatusInternalServerError,
	service.ErrExportFailed:            http.StatusInternalServerError,
	service.ErrUnknownMediaURL:         http.StatusInternalServerError,

	store.ErrUserAlreadyExists: http.StatusBadRequest,
	store.ErrNoUserWasFound:    http.StatusNotFound,
	store.ErrStudentNotFound:   http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,

	ErrImageTooLarge:    http.StatusBadRequest,
	ErrUnsupportedImage: http.StatusBadRequest,
	ErrInvalidStudentID: http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrEmptyToken:                 http.StatusUnauthorized,
}

func statusFromError(err error) int {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return http.StatusBadRequest
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs the error and renders the uniform JSON error body with
// the mapped status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("request failed")
	utils.WriteJSON(w, models.MessageResponse{Message: err.Error()}, statusFromError(err))
}
