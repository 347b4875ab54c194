package entity

import "time"

// Enrollment links one student to one course.
// Duplicate (student, course) pairs are permitted.
type Enrollment struct {
	ID        string
	StudentID string
	CourseID  string
	CreatedAt time.Time
}
