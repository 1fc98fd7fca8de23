package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/mock"
	"github.com/studenthive/student-keeper/internal/store"
	"github.com/studenthive/student-keeper/models"
)

func newTestStudentService(ctrl *gomock.Controller) (*studentService, *mock.MockStudentRepository, *mock.MockMediaService) {
	mockStudents := mock.NewMockStudentRepository(ctrl)
	mockMedia := mock.NewMockMediaService(ctrl)

	svc := NewStudentService(mockStudents, mockMedia, logger.Nop()).(*studentService)
	return svc, mockStudents, mockMedia
}

var testImage = models.ImageUpload{
	Name:        "photo.png",
	ContentType: "image/png",
	Data:        []byte("png-bytes"),
}

// The persisted owner must come from the authenticated principal, never
// from the request payload.
func TestCreateStudent_StampsOwnerFromPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	payload := models.Student{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", Phone: "123",
		Gender: models.GenderFemale,
		UserID: 999, // forged owner in the body
	}

	mockStudents.EXPECT().CreateStudent(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Student) (models.Student, error) {
			assert.Equal(t, int64(7), s.UserID, "owner must be stamped from the principal")
			s.StudentID = 1
			return s, nil
		},
	)

	created, err := svc.CreateStudent(ctx, 7, payload, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)
}

func TestCreateStudent_WithImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, mockMedia := newTestStudentService(ctrl)
	ctx := context.Background()

	const url = "https://media.example.com/students/abc.png"

	gomock.InOrder(
		mockMedia.EXPECT().Upload(ctx, testImage).Return(url, nil),
		mockStudents.EXPECT().CreateStudent(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s models.Student) (models.Student, error) {
				assert.Equal(t, url, s.ProfilePic)
				s.StudentID = 1
				return s, nil
			},
		),
	)

	created, err := svc.CreateStudent(ctx, 7, models.Student{FirstName: "Alice"}, &testImage)
	require.NoError(t, err)
	assert.Equal(t, url, created.ProfilePic)
}

func TestCreateStudent_UploadFailureAbortsCreation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockMedia := newTestStudentService(ctrl)
	ctx := context.Background()

	mockMedia.EXPECT().Upload(ctx, testImage).Return("", errors.New("bucket unavailable"))

	_, err := svc.CreateStudent(ctx, 7, models.Student{FirstName: "Alice"}, &testImage)
	assert.ErrorIs(t, err, ErrImageUploadFailed)
}

func TestListStudents_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	expected := models.StudentFilter{Page: 1, Limit: 3}
	gomock.InOrder(
		mockStudents.EXPECT().ListStudents(ctx, int64(7), expected).Return([]models.Student{{StudentID: 1}}, nil),
		mockStudents.EXPECT().CountStudents(ctx, int64(7), expected).Return(int64(7), nil),
	)

	page, err := svc.ListStudents(ctx, 7, models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages, "ceil(7/3)")
}

func TestListStudents_CapsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	expected := models.StudentFilter{Page: 2, Limit: 100}
	gomock.InOrder(
		mockStudents.EXPECT().ListStudents(ctx, int64(7), expected).Return(nil, nil),
		mockStudents.EXPECT().CountStudents(ctx, int64(7), expected).Return(int64(0), nil),
	)

	_, err := svc.ListStudents(ctx, 7, models.StudentFilter{Page: 2, Limit: 5000})
	require.NoError(t, err)
}

func TestGetStudent_ScopedMissPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	mockStudents.EXPECT().FindStudentByID(ctx, int64(8), int64(5)).Return(models.Student{}, store.ErrStudentNotFound)

	_, err := svc.GetStudent(ctx, 8, 5)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestUpdateStudent_ReplacesImageAndCleansUpOldObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, mockMedia := newTestStudentService(ctrl)
	ctx := context.Background()

	const oldURL = "https://media.example.com/students/old.png"
	const newURL = "https://media.example.com/students/new.png"

	gomock.InOrder(
		mockStudents.EXPECT().FindStudentByID(ctx, int64(7), int64(5)).
			Return(models.Student{StudentID: 5, ProfilePic: oldURL, UserID: 7}, nil),
		mockMedia.EXPECT().Upload(ctx, testImage).Return(newURL, nil),
		mockStudents.EXPECT().UpdateStudent(ctx, int64(7), int64(5), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ int64, update models.StudentUpdate) (models.Student, error) {
				require.NotNil(t, update.ProfilePic)
				assert.Equal(t, newURL, *update.ProfilePic)
				return models.Student{StudentID: 5, ProfilePic: newURL, UserID: 7}, nil
			},
		),
		mockMedia.EXPECT().Delete(ctx, oldURL).Return(nil),
	)

	updated, err := svc.UpdateStudent(ctx, 7, 5, models.StudentUpdate{}, &testImage)
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.ProfilePic)
}

func TestUpdateStudent_CleanupFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, mockMedia := newTestStudentService(ctrl)
	ctx := context.Background()

	const oldURL = "https://media.example.com/students/old.png"
	const newURL = "https://media.example.com/students/new.png"

	gomock.InOrder(
		mockStudents.EXPECT().FindStudentByID(ctx, int64(7), int64(5)).
			Return(models.Student{StudentID: 5, ProfilePic: oldURL, UserID: 7}, nil),
		mockMedia.EXPECT().Upload(ctx, testImage).Return(newURL, nil),
		mockStudents.EXPECT().UpdateStudent(ctx, int64(7), int64(5), gomock.Any()).
			Return(models.Student{StudentID: 5, ProfilePic: newURL, UserID: 7}, nil),
		mockMedia.EXPECT().Delete(ctx, oldURL).Return(errors.New("object store down")),
	)

	_, err := svc.UpdateStudent(ctx, 7, 5, models.StudentUpdate{}, &testImage)
	require.NoError(t, err, "cleanup failures must not surface")
}

func TestUpdateStudent_ForeignOwnerIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	firstName := "Alicia"
	mockStudents.EXPECT().UpdateStudent(ctx, int64(8), int64(5), gomock.Any()).
		Return(models.Student{}, store.ErrStudentNotFound)

	_, err := svc.UpdateStudent(ctx, 8, 5, models.StudentUpdate{FirstName: &firstName}, nil)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestDeleteStudent_CleansUpStoredImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, mockMedia := newTestStudentService(ctrl)
	ctx := context.Background()

	const url = "https://media.example.com/students/abc.png"

	gomock.InOrder(
		mockStudents.EXPECT().DeleteStudent(ctx, int64(7), int64(5)).Return(url, nil),
		mockMedia.EXPECT().Delete(ctx, url).Return(nil),
	)

	require.NoError(t, svc.DeleteStudent(ctx, 7, 5))
}

func TestDeleteStudent_SecondDeleteIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	mockStudents.EXPECT().DeleteStudent(ctx, int64(7), int64(5)).Return("", store.ErrStudentNotFound)

	err := svc.DeleteStudent(ctx, 7, 5)
	assert.ErrorIs(t, err, store.ErrStudentNotFound)
}

func TestDeleteStudent_NoImageNoCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockStudents, _ := newTestStudentService(ctrl)
	ctx := context.Background()

	mockStudents.EXPECT().DeleteStudent(ctx, int64(7), int64(5)).Return("", nil)

	require.NoError(t, svc.DeleteStudent(ctx, 7, 5))
}
