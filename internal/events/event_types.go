package events

import (
	"time"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCourseCreated   EventType = "course_created"
	EventCourseUpdated   EventType = "course_updated"
	EventCourseDeleted   EventType = "course_deleted"
	EventCoursePurchased EventType = "course_purchased"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CourseID  string      `json:"course_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CourseCreatedPayload payload.
type CourseCreatedPayload struct {
	AdminID  string             `json:"admin_id"`
	Title    string             `json:"title"`
	Category string             `json:"category"`
	Level    domain.CourseLevel `json:"level"`
	Price    float64            `json:"price"`
}

// CourseUpdatedPayload payload.
type CourseUpdatedPayload struct {
	AdminID string `json:"admin_id"`
	Title   string `json:"title"`
}

// CourseDeletedPayload payload.
type CourseDeletedPayload struct {
	AdminID string `json:"admin_id"`
}

// CoursePurchasedPayload payload.
type CoursePurchasedPayload struct {
	UserID    string  `json:"user_id"`
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
}
