package course

type CourseResponse struct {
	Name               string `json:"name"`
	FullName           string `json:"full_name"`
	Semester           string `json:"semester"`
	Year               string `json:"year"`
	NumGradesPublished *int   `json:"num_grades_published"`
	NumAssignments     string `json:"num_assignments"`
}

// CoursesResponse - курсы по ролям, ключ - ID курса
type CoursesResponse struct {
	Instructor map[string]CourseResponse `json:"instructor"`
	Student    map[string]CourseResponse `json:"student"`
}

type MemberResponse struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	SID            string `json:"sid"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	NumSubmissions int    `json:"num_submissions"`
	CourseID       string `json:"course_id"`
}
