package entity

import (
	"time"
)

// User types are fixed at registration and never change.
const (
	UserTypeStudent    = "student"
	UserTypeInstructor = "instructor"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and must never leave the server.
type User struct {
	ID       string
	Email    string
	Password string
	UserType string

	// Mutable profile fields. Grade is meaningful for students,
	// Subjects and TeacherID for instructors; this is not enforced.
	FullName  string
	Phone     string
	School    string
	Grade     string
	Subjects  string
	TeacherID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
