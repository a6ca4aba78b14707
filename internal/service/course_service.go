package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/media"
	"github.com/spec-kit/course-marketplace/internal/persistence"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
}

// CourseCreateInput carries the fields required to create a course.
type CourseCreateInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Level       domain.CourseLevel
}

// CourseUpdateInput carries the full replacement state for a course. The
// creator reference is immutable and not part of the input.
type CourseUpdateInput struct {
	Title       string
	Description string
	Price       float64
	Image       domain.CourseImage
	Category    string
	Level       domain.CourseLevel
	IsPublished bool
	Lectures    []domain.Lecture
}

// ImageUpload is the raw image received with a create request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CourseService enforces course ownership and coordinates media uploads.
type CourseService struct {
	courses    repository.CourseRepository
	uploader   media.Uploader
	cache      *persistence.CourseCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, uploader media.Uploader, cache *persistence.CourseCache, dispatcher events.Dispatcher, logger *zap.Logger) *CourseService {
	return &CourseService{
		courses:    courses,
		uploader:   uploader,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create validates fields and the image type, uploads the image, then
// persists the course with the acting admin as creator. Upload failure leaves
// no partial course record.
func (s *CourseService) Create(ctx context.Context, adminID string, in CourseCreateInput, image ImageUpload) (*domain.Course, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" ||
		in.Level == "" {
		return nil, apperrors.NewValidationError("All fields are required", nil)
	}
	if !domain.ValidCourseLevel(in.Level) {
		return nil, apperrors.NewValidationError("Level must be one of Beginner, Intermediate, Advanced", nil)
	}
	if in.Price < 0 {
		return nil, apperrors.NewValidationError("Price must be non-negative", nil)
	}
	if len(image.Content) == 0 {
		return nil, apperrors.NewValidationError("No file uploaded", nil)
	}
	if _, ok := allowedImageTypes[image.ContentType]; !ok {
		return nil, apperrors.NewValidationError("Invalid image format! Only JPG and PNG format image is allowed", nil)
	}

	uploaded, err := s.uploader.Upload(ctx, image.Filename, image.Content)
	if err != nil {
		return nil, apperrors.NewUpstreamFailure("Error uploading image to cloudinary", err)
	}

	course := &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       domain.CourseImage{PublicID: uploaded.PublicID, URL: uploaded.URL},
		CreatorID:   adminID,
		Category:    in.Category,
		Level:       in.Level,
		IsPublished: false,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, course.ID)
	s.publish(ctx, events.EventCourseCreated, course.ID, events.CourseCreatedPayload{
		AdminID:  adminID,
		Title:    course.Title,
		Category: course.Category,
		Level:    course.Level,
		Price:    course.Price,
	})
	return course, nil
}

// Update applies the replacement state only when the acting admin created the
// course. An unowned course and a nonexistent one produce the same outcome.
func (s *CourseService) Update(ctx context.Context, adminID, courseID string, in CourseUpdateInput) (*domain.Course, error) {
	if !domain.ValidCourseLevel(in.Level) {
		return nil, apperrors.NewValidationError("Level must be one of Beginner, Intermediate, Advanced", nil)
	}
	if in.Price < 0 {
		return nil, apperrors.NewValidationError("Price must be non-negative", nil)
	}

	course := &domain.Course{
		ID:          courseID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
		Level:       in.Level,
		IsPublished: in.IsPublished,
		Lectures:    in.Lectures,
	}
	updated, err := s.courses.UpdateOwned(ctx, adminID, course)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Course not found or not authorized")
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, courseID)
	s.publish(ctx, events.EventCourseUpdated, courseID, events.CourseUpdatedPayload{
		AdminID: adminID,
		Title:   updated.Title,
	})
	return updated, nil
}

// Delete removes the course under the same ownership discipline as Update.
func (s *CourseService) Delete(ctx context.Context, adminID, courseID string) error {
	if err := s.courses.DeleteOwned(ctx, adminID, courseID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Course not found")
		}
		return err
	}

	s.cache.Invalidate(ctx, courseID)
	s.publish(ctx, events.EventCourseDeleted, courseID, events.CourseDeletedPayload{AdminID: adminID})
	return nil
}

// List returns all courses. Public, no authorization.
func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, courses)
	return courses, nil
}

// Get returns one course by id. Public, no authorization.
func (s *CourseService) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	if cached, ok := s.cache.GetCourse(ctx, courseID); ok {
		return cached, nil
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, err
	}
	s.cache.SetCourse(ctx, course)
	return course, nil
}

func (s *CourseService) publish(ctx context.Context, eventType events.EventType, courseID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CourseID:  courseID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
