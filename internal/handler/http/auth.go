package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/store"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

const tokenCookieName = "token"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.validate.Struct(request); err != nil {
		log.Err(err).Msg("registration payload failed validation")
		writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		// a miss and a bad password are deliberately indistinguishable
		if errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword) {
			log.Err(err).Msg("invalid username or password")
			utils.WriteJSON(w, models.MessageResponse{Message: "invalid username or password"}, http.StatusBadRequest)
			return
		}
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}
