package http

import (
	"encoding/json"
	"net/http"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	user, err := h.services.AuthService.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var request models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.validate.Struct(request); err != nil {
		log.Err(err).Msg("profile payload failed validation")
		writeError(w, r, err)
		return
	}

	updatedUser, err := h.services.AuthService.UpdateProfile(ctx, userID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updatedUser, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var request models.PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.validate.Struct(request); err != nil {
		log.Err(err).Msg("password payload failed validation")
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, request); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password updated"}, http.StatusOK)
}
