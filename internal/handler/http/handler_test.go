package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/mock"
	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/models"
)

// handlerMocks bundles one gomock double per service the handlers call.
type handlerMocks struct {
	auth     *mock.MockAuthService
	students *mock.MockStudentService
	media    *mock.MockMediaService
	export   *mock.MockExportService
	payments *mock.MockPaymentService
	mail     *mock.MockMailService
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*chi.Mux, *handlerMocks) {
	t.Helper()

	mocks := &handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		students: mock.NewMockStudentService(ctrl),
		media:    mock.NewMockMediaService(ctrl),
		export:   mock.NewMockExportService(ctrl),
		payments: mock.NewMockPaymentService(ctrl),
		mail:     mock.NewMockMailService(ctrl),
	}

	services := &service.Services{
		AuthService:    mocks.auth,
		StudentService: mocks.students,
		MediaService:   mocks.media,
		ExportService:  mocks.export,
		PaymentService: mocks.payments,
		MailService:    mocks.mail,
	}

	handler := NewHandler(services, t.TempDir(), logger.Nop())
	return handler.Init(), mocks
}

// asPrincipal wires the auth middleware to accept "Bearer valid-token" as
// the given user.
func (m *handlerMocks) asPrincipal(userID int64) {
	m.auth.EXPECT().
		ParseToken(gomock.Any(), "valid-token").
		Return(models.Token{UserID: userID, Username: "john"}, nil)
}

func authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Authorization", "Bearer valid-token")
	return r
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func decodeJSON[T any](t *testing.T, body *bytes.Buffer) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

// studentForm builds a multipart body with the given text fields and an
// optional profile picture file.
func studentForm(t *testing.T, fields map[string]string, picName string, pic []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if picName != "" {
		part, err := writer.CreateFormFile(profilePicField, picName)
		require.NoError(t, err)
		_, err = part.Write(pic)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

// pngBytes returns a minimal payload that http.DetectContentType
// classifies as image/png.
func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte("\x89PNG\r\n\x1a\n"))
	return data
}
