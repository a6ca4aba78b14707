package domain

import "time"

// PurchaseStatus enumerates purchase lifecycle states. The service only ever
// records completed purchases; the other values exist for schema fidelity.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
)

// Purchase records a single buy of a course by a user. At most one purchase
// exists per (UserID, CourseID) pair. Amount snapshots the course price at
// purchase time.
type Purchase struct {
	ID        string
	UserID    string
	CourseID  string
	PaymentID string
	Amount    float64
	Status    PurchaseStatus
	CreatedAt time.Time
}

// PurchaseWithCourse is a purchase joined with its course for display.
type PurchaseWithCourse struct {
	Purchase Purchase
	Course   Course
}
