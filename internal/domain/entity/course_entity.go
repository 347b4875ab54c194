package entity

import "time"

// Course is an offering owned by one instructor.
// Rating and LearnersCount are display-only and never recomputed from enrollments.
type Course struct {
	ID            string
	InstructorID  string
	Name          string
	Description   string
	Price         float64
	IsFree        bool
	ImageURL      string
	Level         string
	Rating        float64
	LearnersCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
