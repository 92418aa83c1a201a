package model

import (
	"time"

	"gradescope_proxy/internal/apperr"
)

type Assignment struct {
	AssignmentID      string
	Name              string
	ReleaseDate       *time.Time
	DueDate           *time.Time
	LateDueDate       *time.Time
	SubmissionsStatus string
	Grade             *float64
	MaxGrade          *float64
}

// AssignmentDates - новые даты задания (или продления)
type AssignmentDates struct {
	ReleaseDate *time.Time
	DueDate     *time.Time
	LateDueDate *time.Time
}

// SubmissionRow - строка из таблицы review_grades
type SubmissionRow struct {
	SubmissionID string
	StudentName  string
	Email        string
}

// Validate проверяет порядок заданных дат: release <= due <= late due.
func (d AssignmentDates) Validate() error {
	if d.ReleaseDate != nil && d.DueDate != nil && d.DueDate.Before(*d.ReleaseDate) {
		return apperr.New(apperr.KindInvalidRequest, "due date must not be before release date")
	}
	if d.DueDate != nil && d.LateDueDate != nil && d.LateDueDate.Before(*d.DueDate) {
		return apperr.New(apperr.KindInvalidRequest, "late due date must not be before due date")
	}
	if d.ReleaseDate != nil && d.LateDueDate != nil && d.LateDueDate.Before(*d.ReleaseDate) {
		return apperr.New(apperr.KindInvalidRequest, "late due date must not be before release date")
	}
	return nil
}
