package service

import (
	"context"
	"fmt"
	"math"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/store"
	"github.com/studenthive/student-keeper/models"
)

const (
	defaultPage  = 1
	defaultLimit = 3
	maxLimit     = 100
)

// studentService is the concrete implementation of StudentService.
//
// Ownership never comes from the request body: the owner identifier is an
// explicit parameter derived from the verified token, stamped on creates
// and passed down to the repository's scoped statements for everything
// else.
type studentService struct {
	studentRepository store.StudentRepository
	mediaService      MediaService
	logger            *logger.Logger
}

// NewStudentService constructs a StudentService backed by the given
// repository. The media service is used to store profile pictures and to
// clean them up after replacement or deletion.
func NewStudentService(studentRepository store.StudentRepository, mediaService MediaService, logger *logger.Logger) StudentService {
	return &studentService{
		studentRepository: studentRepository,
		mediaService:      mediaService,
		logger:            logger,
	}
}

// ListStudents returns one page of the owner's records together with the
// total page count. Page defaults to 1, limit to 3, and limit is capped at
// 100.
func (s *studentService) ListStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) (models.StudentPage, error) {
	log := logger.FromContext(ctx)

	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	students, err := s.studentRepository.ListStudents(ctx, ownerID, filter)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Msg("student listing ended with error")
		return models.StudentPage{}, fmt.Errorf("student listing ended with error: %w", err)
	}

	count, err := s.studentRepository.CountStudents(ctx, ownerID, filter)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Msg("student count ended with error")
		return models.StudentPage{}, fmt.Errorf("student count ended with error: %w", err)
	}

	return models.StudentPage{
		Students:    students,
		TotalPages:  int(math.Ceil(float64(count) / float64(filter.Limit))),
		CurrentPage: filter.Page,
	}, nil
}

// GetStudent returns a single record scoped to ownerID.
func (s *studentService) GetStudent(ctx context.Context, ownerID, studentID int64) (models.Student, error) {
	log := logger.FromContext(ctx)

	student, err := s.studentRepository.FindStudentByID(ctx, ownerID, studentID)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Int64("studentID", studentID).Msg("student search ended with error")
		return models.Student{}, fmt.Errorf("student search ended with error: %w", err)
	}

	return student, nil
}

// CreateStudent persists a new record owned by ownerID. Any UserID value
// arriving on the student payload is discarded. When an image is supplied
// it is uploaded first and its URL stored on the record; an upload failure
// aborts the creation.
func (s *studentService) CreateStudent(ctx context.Context, ownerID int64, student models.Student, image *models.ImageUpload) (models.Student, error) {
	log := logger.FromContext(ctx)

	student.UserID = ownerID
	student.ProfilePic = ""

	if image != nil {
		url, err := s.mediaService.Upload(ctx, *image)
		if err != nil {
			log.Err(err).Int64("ownerID", ownerID).Msg("profile picture upload ended with error")
			return models.Student{}, fmt.Errorf("%w: %w", ErrImageUploadFailed, err)
		}
		student.ProfilePic = url
	}

	created, err := s.studentRepository.CreateStudent(ctx, student)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Msg("student creation ended with error")
		return models.Student{}, fmt.Errorf("student creation ended with error: %w", err)
	}

	return created, nil
}

// UpdateStudent applies the partial update to an owned record. The write
// itself is a single conditional statement in the repository; the scoped
// read beforehand only captures the previous picture URL so the old object
// can be removed after a successful replacement. Cleanup failures are
// logged and swallowed.
func (s *studentService) UpdateStudent(ctx context.Context, ownerID, studentID int64, update models.StudentUpdate, image *models.ImageUpload) (models.Student, error) {
	log := logger.FromContext(ctx)

	var previousPic string
	if image != nil {
		current, err := s.studentRepository.FindStudentByID(ctx, ownerID, studentID)
		if err != nil {
			log.Err(err).Int64("ownerID", ownerID).Int64("studentID", studentID).Msg("student search ended with error")
			return models.Student{}, fmt.Errorf("student search ended with error: %w", err)
		}
		previousPic = current.ProfilePic

		url, err := s.mediaService.Upload(ctx, *image)
		if err != nil {
			log.Err(err).Int64("ownerID", ownerID).Msg("profile picture upload ended with error")
			return models.Student{}, fmt.Errorf("%w: %w", ErrImageUploadFailed, err)
		}
		update.ProfilePic = &url
	}

	updated, err := s.studentRepository.UpdateStudent(ctx, ownerID, studentID, update)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Int64("studentID", studentID).Msg("student update ended with error")
		return models.Student{}, fmt.Errorf("student update ended with error: %w", err)
	}

	if image != nil && previousPic != "" && previousPic != updated.ProfilePic {
		s.removeImage(ctx, previousPic)
	}

	return updated, nil
}

// DeleteStudent removes an owned record and cleans up its stored profile
// picture, if any. Cleanup failures are logged and swallowed.
func (s *studentService) DeleteStudent(ctx context.Context, ownerID, studentID int64) error {
	log := logger.FromContext(ctx)

	profilePic, err := s.studentRepository.DeleteStudent(ctx, ownerID, studentID)
	if err != nil {
		log.Err(err).Int64("ownerID", ownerID).Int64("studentID", studentID).Msg("student deletion ended with error")
		return fmt.Errorf("student deletion ended with error: %w", err)
	}

	if profilePic != "" {
		s.removeImage(ctx, profilePic)
	}

	return nil
}

// removeImage deletes an object-store image best-effort: the record
// mutation has already succeeded, so a failed cleanup only leaves an
// orphaned object behind.
func (s *studentService) removeImage(ctx context.Context, url string) {
	if err := s.mediaService.Delete(ctx, url); err != nil {
		logger.FromContext(ctx).Err(err).Str("url", url).Msg("profile picture cleanup failed")
	}
}
