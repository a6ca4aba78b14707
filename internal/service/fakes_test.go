package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/media"
	"github.com/spec-kit/course-marketplace/internal/repository"
)

type fakeAdminRepo struct {
	byEmail map[string]*domain.Admin
	nextID  int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byEmail: map[string]*domain.Admin{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	if _, ok := r.byEmail[admin.Email]; ok {
		return errors.New("unique violation")
	}
	r.nextID++
	admin.ID = fmt.Sprintf("admin-%d", r.nextID)
	copied := *admin
	r.byEmail[admin.Email] = &copied
	return nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	admin, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return errors.New("unique violation")
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

type fakeCourseRepo struct {
	byID   map[string]*domain.Course
	nextID int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{byID: map[string]*domain.Course{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	r.nextID++
	course.ID = fmt.Sprintf("course-%d", r.nextID)
	copied := *course
	r.byID[course.ID] = &copied
	return nil
}

func (r *fakeCourseRepo) UpdateOwned(_ context.Context, adminID string, course *domain.Course) (*domain.Course, error) {
	existing, ok := r.byID[course.ID]
	if !ok || existing.CreatorID != adminID {
		return nil, pgx.ErrNoRows
	}
	updated := *course
	updated.CreatorID = existing.CreatorID
	updated.CreatedAt = existing.CreatedAt
	r.byID[course.ID] = &updated
	copied := updated
	return &copied, nil
}

func (r *fakeCourseRepo) DeleteOwned(_ context.Context, adminID, courseID string) error {
	existing, ok := r.byID[courseID]
	if !ok || existing.CreatorID != adminID {
		return pgx.ErrNoRows
	}
	delete(r.byID, courseID)
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	course, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *course
	return &copied, nil
}

func (r *fakeCourseRepo) List(_ context.Context) ([]domain.Course, error) {
	result := make([]domain.Course, 0, len(r.byID))
	for _, course := range r.byID {
		result = append(result, *course)
	}
	return result, nil
}

type fakePurchaseRepo struct {
	purchases []*domain.Purchase
	courses   *fakeCourseRepo
	nextID    int
}

func newFakePurchaseRepo(courses *fakeCourseRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{courses: courses}
}

func (r *fakePurchaseRepo) Create(_ context.Context, purchase *domain.Purchase) error {
	for _, existing := range r.purchases {
		if existing.UserID == purchase.UserID && existing.CourseID == purchase.CourseID {
			return repository.ErrDuplicatePurchase
		}
	}
	r.nextID++
	purchase.ID = fmt.Sprintf("purchase-%d", r.nextID)
	copied := *purchase
	r.purchases = append(r.purchases, &copied)
	return nil
}

func (r *fakePurchaseRepo) ExistsByUserAndCourse(_ context.Context, userID, courseID string) (bool, error) {
	for _, existing := range r.purchases {
		if existing.UserID == userID && existing.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePurchaseRepo) ListByUserWithCourses(ctx context.Context, userID string) ([]domain.PurchaseWithCourse, error) {
	var result []domain.PurchaseWithCourse
	for _, purchase := range r.purchases {
		if purchase.UserID != userID {
			continue
		}
		course, err := r.courses.GetByID(ctx, purchase.CourseID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.PurchaseWithCourse{Purchase: *purchase, Course: *course})
	}
	return result, nil
}

type fakeUploader struct {
	calls   int
	failErr error
}

func (u *fakeUploader) Upload(_ context.Context, filename string, _ []byte) (*media.UploadResult, error) {
	u.calls++
	if u.failErr != nil {
		return nil, u.failErr
	}
	return &media.UploadResult{
		PublicID: "img-" + filename,
		URL:      "https://cdn.example.com/" + filename,
	}, nil
}
