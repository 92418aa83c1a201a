package converter

import (
	assignmentDTO "gradescope_proxy/internal/api/dto/assignment"
	"gradescope_proxy/internal/model"
)

func ToAssignmentsResponse(assignments []model.Assignment) []assignmentDTO.AssignmentResponse {
	result := make([]assignmentDTO.AssignmentResponse, len(assignments))
	for i, a := range assignments {
		result[i] = assignmentDTO.AssignmentResponse{
			AssignmentID:      a.AssignmentID,
			Name:              a.Name,
			ReleaseDate:       a.ReleaseDate,
			DueDate:           a.DueDate,
			LateDueDate:       a.LateDueDate,
			SubmissionsStatus: a.SubmissionsStatus,
			Grade:             a.Grade,
			MaxGrade:          a.MaxGrade,
		}
	}
	return result
}

func ToAssignmentDates(req assignmentDTO.DatesRequest) model.AssignmentDates {
	return model.AssignmentDates{
		ReleaseDate: req.ReleaseDate,
		DueDate:     req.DueDate,
		LateDueDate: req.LateDueDate,
	}
}
