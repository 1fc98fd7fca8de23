package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/internal/utils"
)

func (h *Handler) downloadStudentsExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	workbook, err := h.services.ExportService.StudentsExcel(ctx, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="students.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(workbook)))
	w.WriteHeader(http.StatusOK)
	w.Write(workbook)
}

func (h *Handler) generateStudentPDF(w http.ResponseWriter, r *http.Request) {
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

	document, err := h.services.ExportService.StudentPDF(ctx, ownerID, studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="student_%d.pdf"`, studentID))
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}
