package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

const (
	// maxImageBytes caps profile picture uploads at 3 MiB.
	maxImageBytes = 3 << 20

	// maxMultipartMemory bounds how much of a parsed form is held in memory.
	maxMultipartMemory = 8 << 20

	profilePicField = "profile_pic"
)

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	filter := models.StudentFilter{
		Search: query.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	studentPage, err := h.services.StudentService.ListStudents(ctx, ownerID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, studentPage, http.StatusOK)
}

func (h *Handler) getStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	studentID, err := studentIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	student, err := h.services.StudentService.GetStudent(ctx, ownerID, studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, student, http.StatusOK)
}

func (h *Handler) createStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	student := models.Student{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Gender:    r.FormValue("gender"),
	}
	if err := h.validate.StructExcept(student, "StudentID", "UserID"); err != nil {
		log.Err(err).Msg("student payload failed validation")
		writeError(w, r, err)
		return
	}

	image, err := h.imageFromForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.StudentService.CreateStudent(ctx, ownerID, student, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	studentID, err := studentIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	update, err := h.studentUpdateFromForm(r)
	if err != nil {
		log.Err(err).Msg("student update failed validation")
		writeError(w, r, err)
		return
	}

	image, err := h.imageFromForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.services.StudentService.UpdateStudent(ctx, ownerID, studentID, update, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	studentID, err := studentIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.StudentService.DeleteStudent(ctx, ownerID, studentID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "student deleted"}, http.StatusOK)
}

func studentIDFromRequest(r *http.Request) (int64, error) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || studentID < 1 {
		return 0, ErrInvalidStudentID
	}
	return studentID, nil
}

// studentUpdateFromForm collects the form fields that are present into a
// partial update. Absent fields stay nil and remain unchanged.
func (h *Handler) studentUpdateFromForm(r *http.Request) (models.StudentUpdate, error) {
	var update models.StudentUpdate

	fields := map[string]**string{
		"first_name": &update.FirstName,
		"last_name":  &update.LastName,
		"email":      &update.Email,
		"phone":      &update.Phone,
		"gender":     &update.Gender,
	}
	for name, target := range fields {
		if values, ok := r.MultipartForm.Value[name]; ok && len(values) > 0 {
			value := values[0]
			*target = &value
		}
	}

	if update.Email != nil {
		if err := h.validate.Var(*update.Email, "required,email"); err != nil {
			return models.StudentUpdate{}, err
		}
	}
	if update.Gender != nil {
		if err := h.validate.Var(*update.Gender, "required,oneof=Male Female Other"); err != nil {
			return models.StudentUpdate{}, err
		}
	}

	return update, nil
}

// imageFromForm extracts the optional profile picture from the parsed
// multipart form, enforcing the size cap and the image/* MIME filter.
// Returns (nil, nil) when no file was attached.
func (h *Handler) imageFromForm(r *http.Request) (*models.ImageUpload, error) {
	file, header, err := r.FormFile(profilePicField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, service.ErrInvalidDataProvided
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		return nil, ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, service.ErrInvalidDataProvided
	}
	if len(data) > maxImageBytes {
		return nil, ErrImageTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImage
	}

	return &models.ImageUpload{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
