package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/studenthive/student-keeper/internal/store"
)

func TestDownloadStudentsExcel_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	workbook := []byte("xlsx-bytes")

	mocks.asPrincipal(7)
	mocks.export.EXPECT().StudentsExcel(gomock.Any(), int64(7)).Return(workbook, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/students/download/excel", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="students.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, workbook, w.Body.Bytes())
}

func TestDownloadStudentsExcel_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestHandler(t, ctrl)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/students/download/excel", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateStudentPDF_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	document := []byte("%PDF-1.4 fake")

	mocks.asPrincipal(7)
	mocks.export.EXPECT().StudentPDF(gomock.Any(), int64(7), int64(5)).Return(document, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/students/5/generate-pdf", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="student_5.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, document, w.Body.Bytes())
}

func TestGenerateStudentPDF_ForeignRecordIs404(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.asPrincipal(8)
	mocks.export.EXPECT().StudentPDF(gomock.Any(), int64(8), int64(5)).Return(nil, store.ErrStudentNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/students/5/generate-pdf", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
