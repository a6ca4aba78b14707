package domain

import "time"

// CourseLevel enumerates the fixed difficulty levels.
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
)

// ValidCourseLevel reports whether the level is one of the fixed enumeration.
func ValidCourseLevel(level CourseLevel) bool {
	switch level {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// CourseImage references the uploaded image in the media store.
type CourseImage struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Lecture is a content sub-record of a course.
type Lecture struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	PublicID    string `json:"public_id,omitempty"`
	IsFree      bool   `json:"isFree"`
}

// Course is the aggregate for published learning content. CreatorID is set at
// creation and never changes; mutation and deletion require the acting admin
// to equal CreatorID.
type Course struct {
	ID               string
	Title            string
	Description      string
	Price            float64
	Image            CourseImage
	CreatorID        string
	Category         string
	Level            CourseLevel
	IsPublished      bool
	Lectures         []Lecture
	EnrolledStudents []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
