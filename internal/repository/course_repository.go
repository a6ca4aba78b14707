package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// CourseRepository encapsulates course persistence. UpdateOwned and
// DeleteOwned match on (id, creator_id) in a single statement, so an unowned
// course and a nonexistent one are indistinguishable to callers.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	UpdateOwned(ctx context.Context, adminID string, course *domain.Course) (*domain.Course, error)
	DeleteOwned(ctx context.Context, adminID, courseID string) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository instantiates repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, title, description, price, image_public_id, image_url,
               creator_id, category, level, is_published, lectures, enrolled_students,
               created_at, updated_at`

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	lectures, err := marshalLectures(course.Lectures)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO courses (title, description, price, image_public_id, image_url, creator_id, category, level, is_published, lectures)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.Image.PublicID,
		course.Image.URL,
		course.CreatorID,
		course.Category,
		course.Level,
		course.IsPublished,
		lectures,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}

// UpdateOwned applies the update only when the course exists AND the acting
// admin is its creator. Returns pgx.ErrNoRows for both the missing and the
// unowned case.
func (r *courseRepository) UpdateOwned(ctx context.Context, adminID string, course *domain.Course) (*domain.Course, error) {
	lectures, err := marshalLectures(course.Lectures)
	if err != nil {
		return nil, err
	}

	const query = `
        UPDATE courses SET title=$1, description=$2, price=$3, image_public_id=$4, image_url=$5,
            category=$6, level=$7, is_published=$8, lectures=$9, updated_at=NOW()
        WHERE id=$10 AND creator_id=$11
        RETURNING ` + courseColumns
	row := r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.Image.PublicID,
		course.Image.URL,
		course.Category,
		course.Level,
		course.IsPublished,
		lectures,
		course.ID,
		adminID,
	)
	return scanCourse(row)
}

// DeleteOwned removes the course only when the acting admin is its creator.
func (r *courseRepository) DeleteOwned(ctx context.Context, adminID, courseID string) error {
	const query = `DELETE FROM courses WHERE id=$1 AND creator_id=$2`
	cmd, err := r.pool.Exec(ctx, query, courseID, adminID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id=$1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *course)
	}
	return result, rows.Err()
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	var lectures []byte
	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.Image.PublicID,
		&course.Image.URL,
		&course.CreatorID,
		&course.Category,
		&course.Level,
		&course.IsPublished,
		&lectures,
		&course.EnrolledStudents,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(lectures) > 0 {
		if err := json.Unmarshal(lectures, &course.Lectures); err != nil {
			return nil, err
		}
	}
	return &course, nil
}

func marshalLectures(lectures []domain.Lecture) ([]byte, error) {
	if lectures == nil {
		lectures = []domain.Lecture{}
	}
	return json.Marshal(lectures)
}
