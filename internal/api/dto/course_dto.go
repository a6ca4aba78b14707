package dto

import (
	"time"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// CourseUpdateRequest carries the replacement state for a course update.
type CourseUpdateRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Image       CourseImage        `json:"image"`
	Category    string             `json:"category"`
	Level       domain.CourseLevel `json:"level"`
	IsPublished bool               `json:"isPublished"`
	Lectures    []domain.Lecture   `json:"lectures"`
}

// CourseImage is the stored media reference.
type CourseImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Price            float64            `json:"price"`
	Image            CourseImage        `json:"image"`
	CreatorID        string             `json:"creatorId"`
	Category         string             `json:"category"`
	Level            domain.CourseLevel `json:"level"`
	IsPublished      bool               `json:"isPublished"`
	Lectures         []domain.Lecture   `json:"lectures"`
	EnrolledStudents []string           `json:"enrolledStudents"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewCourseResponse maps a domain course to its public view.
func NewCourseResponse(course *domain.Course) CourseResponse {
	lectures := course.Lectures
	if lectures == nil {
		lectures = []domain.Lecture{}
	}
	students := course.EnrolledStudents
	if students == nil {
		students = []string{}
	}
	return CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		Price:            course.Price,
		Image:            CourseImage{PublicID: course.Image.PublicID, URL: course.Image.URL},
		CreatorID:        course.CreatorID,
		Category:         course.Category,
		Level:            course.Level,
		IsPublished:      course.IsPublished,
		Lectures:         lectures,
		EnrolledStudents: students,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
}

// PurchaseResponse is the public view of a purchase record.
type PurchaseResponse struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	CourseID  string                `json:"courseId"`
	PaymentID string                `json:"paymentId"`
	Amount    float64               `json:"amount"`
	Status    domain.PurchaseStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewPurchaseResponse maps a domain purchase to its public view.
func NewPurchaseResponse(purchase *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:        purchase.ID,
		UserID:    purchase.UserID,
		CourseID:  purchase.CourseID,
		PaymentID: purchase.PaymentID,
		Amount:    purchase.Amount,
		Status:    purchase.Status,
		CreatedAt: purchase.CreatedAt,
	}
}

// PurchaseHistoryItem is a purchase joined with its course.
type PurchaseHistoryItem struct {
	Purchase PurchaseResponse `json:"purchase"`
	Course   CourseResponse   `json:"course"`
}
