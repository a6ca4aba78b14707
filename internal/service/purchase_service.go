package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util"
)

// PurchaseService records purchases and serves purchase history. No real
// payment processing happens here: the payment reference is fabricated and
// every purchase completes unconditionally.
type PurchaseService struct {
	courses    repository.CourseRepository
	purchases  repository.PurchaseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPurchaseService builds the service.
func NewPurchaseService(courses repository.CourseRepository, purchases repository.PurchaseRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{
		courses:    courses,
		purchases:  purchases,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Buy records a single purchase of the course by the user, snapshotting the
// current course price. The existence check gives the friendly duplicate
// error; the unique index behind repository.Create catches a concurrent
// duplicate that slips past it.
func (s *PurchaseService) Buy(ctx context.Context, userID, courseID string) (*domain.Purchase, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, err
	}

	exists, err := s.purchases.ExistsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate("You have already purchased this course")
	}

	purchase := &domain.Purchase{
		UserID:    userID,
		CourseID:  courseID,
		PaymentID: fmt.Sprintf("MOCK_PAYMENT_%d", time.Now().UnixMilli()),
		Amount:    course.Price,
		Status:    domain.PurchaseStatusCompleted,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		if err == repository.ErrDuplicatePurchase {
			return nil, apperrors.NewDuplicate("You have already purchased this course")
		}
		return nil, err
	}

	s.publish(ctx, courseID, events.CoursePurchasedPayload{
		UserID:    userID,
		PaymentID: purchase.PaymentID,
		Amount:    purchase.Amount,
	})
	return purchase, nil
}

// History returns all the user's purchases with their courses resolved.
func (s *PurchaseService) History(ctx context.Context, userID string) ([]domain.PurchaseWithCourse, error) {
	return s.purchases.ListByUserWithCourses(ctx, userID)
}

func (s *PurchaseService) publish(ctx context.Context, courseID string, payload events.CoursePurchasedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCoursePurchased,
		CourseID:  courseID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
