package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/studenthive/student-keeper/internal/service"
	"github.com/studenthive/student-keeper/models"
)

func TestSendEmail_JSONPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	message := models.MailMessage{To: "jane@example.com", Subject: "Hello", Body: "Greetings from the registry"}

	mocks.asPrincipal(7)
	mocks.mail.EXPECT().Send(gomock.Any(), message).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/users/send-email", jsonBody(t, message)))

	require.Equal(t, http.StatusOK, w.Code)

	response := decodeJSON[models.MessageResponse](t, w.Body)
	assert.Equal(t, "email sent", response.Message)
}

func TestSendEmail_MultipartWithAttachment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("to", "jane@example.com"))
	require.NoError(t, writer.WriteField("subject", "Report"))
	require.NoError(t, writer.WriteField("text", "Attached is the report"))
	part, err := writer.CreateFormFile(attachmentField, "report.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("report body"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	mocks.asPrincipal(7)
	mocks.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, message models.MailMessage) error {
			assert.Equal(t, "jane@example.com", message.To)
			assert.Equal(t, "report.txt", message.AttachmentName)
			assert.Equal(t, []byte("report body"), message.Attachment)
			return nil
		},
	)

	r := authedRequest(t, http.MethodPost, "/api/users/send-email", &buf)
	r.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSendEmail_InvalidRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.asPrincipal(7)

	body := jsonBody(t, models.MailMessage{To: "not-an-email", Subject: "Hello", Body: "text"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/users/send-email", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendEmail_DeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestHandler(t, ctrl)

	mocks.asPrincipal(7)
	mocks.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(service.ErrMailDeliveryFailed)

	body := jsonBody(t, models.MailMessage{To: "jane@example.com", Subject: "Hello", Body: "text"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/users/send-email", body))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
