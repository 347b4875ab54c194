package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/educonnect-api/config"
	"github.com/oksasatya/educonnect-api/pkg/helpers"
)

// Seeds one instructor, one student, a course and an enrollment for
// local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	instructorID := seedUser(db, "admin@example.com", "admin123", "instructor", "Admin User", "Secret Coder Academy", "")
	studentID := seedUser(db, "student@example.com", "student123", "student", "Student User", "Secret Coder Academy", "10th")

	var courseID string
	err = db.QueryRow(`
		INSERT INTO courses (instructor_id, name, description, price, is_free, level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, instructorID, "Introduction to Python", "Learn Python basics", 99.99, false, "Beginner").Scan(&courseID)
	if err != nil {
		log.Fatalf("failed to seed course: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO enrollments (student_id, course_id) VALUES ($1, $2)
	`, studentID, courseID); err != nil {
		log.Fatalf("failed to seed enrollment: %v", err)
	}

	fmt.Printf("seeded instructor=%s student=%s course=%s\n", instructorID, studentID, courseID)
}

func seedUser(db *sql.DB, email, password, userType, fullName, school, grade string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, user_type, full_name, school, grade)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ((lower(email))) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, email, hash, userType, fullName, school, grade).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
