package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/studenthive/student-keeper/models"
)

// AuthService handles account registration, credential verification and
// the JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, request models.ProfileUpdateRequest) (models.User, error)
	ChangePassword(ctx context.Context, userID int64, request models.PasswordChangeRequest) error
}

// StudentService handles the student record lifecycle. Every method takes
// the authenticated owner's identifier explicitly; the service stamps it
// on writes and scopes all reads with it, so a caller can never reach
// another account's records.
type StudentService interface {
	ListStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) (models.StudentPage, error)
	GetStudent(ctx context.Context, ownerID, studentID int64) (models.Student, error)
	CreateStudent(ctx context.Context, ownerID int64, student models.Student, image *models.ImageUpload) (models.Student, error)
	UpdateStudent(ctx context.Context, ownerID, studentID int64, update models.StudentUpdate, image *models.ImageUpload) (models.Student, error)
	DeleteStudent(ctx context.Context, ownerID, studentID int64) error
}

// MediaService stores profile pictures in the object store and serves
// back public URLs.
type MediaService interface {
	// Upload stores the image under a fresh key and returns its public URL.
	Upload(ctx context.Context, image models.ImageUpload) (string, error)

	// Delete removes the object referenced by a URL previously returned by
	// Upload.
	Delete(ctx context.Context, url string) error
}

// ExportService renders the caller's student records into downloadable
// documents.
type ExportService interface {
	// StudentsExcel renders every record owned by ownerID into an .xlsx
	// workbook.
	StudentsExcel(ctx context.Context, ownerID int64) ([]byte, error)

	// StudentPDF renders a single owned record into a one-page PDF profile
	// card.
	StudentPDF(ctx context.Context, ownerID, studentID int64) ([]byte, error)
}

// PaymentService talks to the payment gateway.
type PaymentService interface {
	// CreateOrder registers an order with the gateway and returns its raw
	// representation for the client-side checkout widget.
	CreateOrder(ctx context.Context, request models.CreateOrderRequest) (map[string]interface{}, error)

	// VerifyPayment checks the gateway's callback signature against the
	// configured secret.
	VerifyPayment(ctx context.Context, request models.VerifyPaymentRequest) error
}

// MailService delivers outbound mail through the configured SMTP relay.
type MailService interface {
	Send(ctx context.Context, message models.MailMessage) error
}
