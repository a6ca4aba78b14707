package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

func newTestCourseService(repo *fakeCourseRepo, uploader *fakeUploader) *CourseService {
	return NewCourseService(repo, uploader, nil, nil, zap.NewNop())
}

func validCourseInput() CourseCreateInput {
	return CourseCreateInput{
		Title:       "Go from scratch",
		Description: "A practical introduction",
		Price:       500,
		Category:    "Programming",
		Level:       domain.CourseLevelBeginner,
	}
}

func pngUpload() ImageUpload {
	return ImageUpload{Filename: "cover.png", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}}
}

func TestCreateCourse(t *testing.T) {
	repo := newFakeCourseRepo()
	uploader := &fakeUploader{}
	svc := newTestCourseService(repo, uploader)

	course, err := svc.Create(context.Background(), "admin-1", validCourseInput(), pngUpload())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if course.CreatorID != "admin-1" {
		t.Fatalf("expected creator admin-1, got %s", course.CreatorID)
	}
	if course.IsPublished {
		t.Fatalf("new courses must be unpublished")
	}
	if course.Image.PublicID == "" || course.Image.URL == "" {
		t.Fatalf("expected image reference from the media store")
	}
	if uploader.calls != 1 {
		t.Fatalf("expected exactly one upload, got %d", uploader.calls)
	}
}

func TestCreateCourseRequiresAllFields(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newTestCourseService(repo, &fakeUploader{})

	in := validCourseInput()
	in.Title = ""
	if _, err := svc.Create(context.Background(), "admin-1", in, pngUpload()); err == nil {
		t.Fatalf("expected missing title to be rejected")
	}

	in = validCourseInput()
	in.Level = "Expert"
	if _, err := svc.Create(context.Background(), "admin-1", in, pngUpload()); err == nil {
		t.Fatalf("expected unknown level to be rejected")
	}

	in = validCourseInput()
	in.Price = -1
	if _, err := svc.Create(context.Background(), "admin-1", in, pngUpload()); err == nil {
		t.Fatalf("expected negative price to be rejected")
	}
}

func TestCreateCourseRejectsBadImageTypeBeforeUpload(t *testing.T) {
	repo := newFakeCourseRepo()
	uploader := &fakeUploader{}
	svc := newTestCourseService(repo, uploader)

	img := ImageUpload{Filename: "anim.gif", ContentType: "image/gif", Content: []byte("GIF89a")}
	if _, err := svc.Create(context.Background(), "admin-1", validCourseInput(), img); err == nil {
		t.Fatalf("expected gif to be rejected")
	}
	if uploader.calls != 0 {
		t.Fatalf("MIME check must happen before any upload attempt")
	}
}

func TestCreateCourseUploadFailureLeavesNoRecord(t *testing.T) {
	repo := newFakeCourseRepo()
	uploader := &fakeUploader{failErr: errors.New("media store down")}
	svc := newTestCourseService(repo, uploader)

	if _, err := svc.Create(context.Background(), "admin-1", validCourseInput(), pngUpload()); err == nil {
		t.Fatalf("expected upload failure to surface")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("upload failure must not leave a partial course record")
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newTestCourseService(repo, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-a", validCourseInput(), pngUpload())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	update := CourseUpdateInput{
		Title:       "Hijacked",
		Description: "nope",
		Price:       1,
		Category:    "Programming",
		Level:       domain.CourseLevelBeginner,
	}

	_, errOther := svc.Update(ctx, "admin-b", created.ID, update)
	_, errMissing := svc.Update(ctx, "admin-b", "no-such-course", update)
	if errOther == nil || errMissing == nil {
		t.Fatalf("expected both unowned and missing course updates to fail")
	}
	// unowned and nonexistent must be indistinguishable
	if errOther.Error() != errMissing.Error() {
		t.Fatalf("outcomes differ: %q vs %q", errOther, errMissing)
	}

	updated, err := svc.Update(ctx, "admin-a", created.ID, update)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Hijacked" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.CreatorID != "admin-a" {
		t.Fatalf("creator reference must be immutable")
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newTestCourseService(repo, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-a", validCourseInput(), pngUpload())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	errOther := svc.Delete(ctx, "admin-b", created.ID)
	errMissing := svc.Delete(ctx, "admin-b", "no-such-course")
	if errOther == nil || errMissing == nil {
		t.Fatalf("expected both unowned and missing course deletes to fail")
	}
	if errOther.Error() != errMissing.Error() {
		t.Fatalf("outcomes differ: %q vs %q", errOther, errMissing)
	}

	if err := svc.Delete(ctx, "admin-a", created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err == nil {
		t.Fatalf("expected deleted course to be gone")
	}
}

func TestPublicReads(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newTestCourseService(repo, &fakeUploader{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin-a", validCourseInput(), pngUpload())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 course, got %d", len(list))
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != created.Title {
		t.Fatalf("unexpected course %q", got.Title)
	}
}
