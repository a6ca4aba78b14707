package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// ErrDuplicatePurchase reports a second purchase for the same (user, course)
// pair. The purchases table carries a unique index on the pair, so a
// concurrent duplicate that slips past the service-level existence check
// still loses here.
var ErrDuplicatePurchase = errors.New("purchase already exists for user and course")

// PurchaseRepository encapsulates purchase persistence.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error)
	ListByUserWithCourses(ctx context.Context, userID string) ([]domain.PurchaseWithCourse, error)
}

type purchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository instantiates repository.
func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{pool: pool}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO purchases (user_id, course_id, payment_id, amount, status)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id, course_id) DO NOTHING
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		purchase.UserID,
		purchase.CourseID,
		purchase.PaymentID,
		purchase.Amount,
		purchase.Status,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicatePurchase
	}
	if IsUniqueViolation(err) {
		return ErrDuplicatePurchase
	}
	return err
}

func (r *purchaseRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id=$1 AND course_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByUserWithCourses returns the user's purchase history, newest first,
// each row joined with its course for display.
func (r *purchaseRepository) ListByUserWithCourses(ctx context.Context, userID string) ([]domain.PurchaseWithCourse, error) {
	const query = `
        SELECT p.id, p.user_id, p.course_id, p.payment_id, p.amount, p.status, p.created_at,
               c.id, c.title, c.description, c.price, c.image_public_id, c.image_url,
               c.creator_id, c.category, c.level, c.is_published, c.lectures, c.enrolled_students,
               c.created_at, c.updated_at
        FROM purchases p
        JOIN courses c ON c.id = p.course_id
        WHERE p.user_id=$1
        ORDER BY p.created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PurchaseWithCourse
	for rows.Next() {
		var item domain.PurchaseWithCourse
		var lectures []byte
		if err := rows.Scan(
			&item.Purchase.ID,
			&item.Purchase.UserID,
			&item.Purchase.CourseID,
			&item.Purchase.PaymentID,
			&item.Purchase.Amount,
			&item.Purchase.Status,
			&item.Purchase.CreatedAt,
			&item.Course.ID,
			&item.Course.Title,
			&item.Course.Description,
			&item.Course.Price,
			&item.Course.Image.PublicID,
			&item.Course.Image.URL,
			&item.Course.CreatorID,
			&item.Course.Category,
			&item.Course.Level,
			&item.Course.IsPublished,
			&lectures,
			&item.Course.EnrolledStudents,
			&item.Course.CreatedAt,
			&item.Course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(lectures) > 0 {
			if err := json.Unmarshal(lectures, &item.Course.Lectures); err != nil {
				return nil, err
			}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// IsUniqueViolation reports a Postgres 23505 unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
