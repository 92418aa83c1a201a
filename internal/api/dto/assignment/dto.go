package assignment

import "time"

type AssignmentResponse struct {
	AssignmentID      string     `json:"assignment_id"`
	Name              string     `json:"name"`
	ReleaseDate       *time.Time `json:"release_date"`
	DueDate           *time.Time `json:"due_date"`
	LateDueDate       *time.Time `json:"late_due_date"`
	SubmissionsStatus string     `json:"submissions_status"`
	Grade             *float64   `json:"grade"`
	MaxGrade          *float64   `json:"max_grade"`
}

// DatesRequest - тело запросов на смену дат (RFC 3339)
type DatesRequest struct {
	ReleaseDate *time.Time `json:"release_date"`
	DueDate     *time.Time `json:"due_date"`
	LateDueDate *time.Time `json:"late_due_date"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
