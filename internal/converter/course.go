package converter

import (
	courseDTO "gradescope_proxy/internal/api/dto/course"
	"gradescope_proxy/internal/model"
)

func ToCoursesResponse(courses model.Courses) courseDTO.CoursesResponse {
	return courseDTO.CoursesResponse{
		Instructor: toCourseMap(courses.Instructor),
		Student:    toCourseMap(courses.Student),
	}
}

func toCourseMap(courses map[string]model.Course) map[string]courseDTO.CourseResponse {
	result := make(map[string]courseDTO.CourseResponse, len(courses))
	for id, c := range courses {
		result[id] = courseDTO.CourseResponse{
			Name:               c.Name,
			FullName:           c.FullName,
			Semester:           c.Semester,
			Year:               c.Year,
			NumGradesPublished: c.NumGradesPublished,
			NumAssignments:     c.NumAssignments,
		}
	}
	return result
}

func ToMembersResponse(members []model.Member) []courseDTO.MemberResponse {
	result := make([]courseDTO.MemberResponse, len(members))
	for i, m := range members {
		result[i] = courseDTO.MemberResponse{
			UserID:         m.UserID,
			FullName:       m.FullName,
			FirstName:      m.FirstName,
			LastName:       m.LastName,
			SID:            m.SID,
			Email:          m.Email,
			Role:           m.Role,
			NumSubmissions: m.NumSubmissions,
			CourseID:       m.CourseID,
		}
	}
	return result
}
