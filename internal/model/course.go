package model

type Course struct {
	ID                 string
	Name               string
	FullName           string
	Semester           string
	Year               string
	NumGradesPublished *int
	NumAssignments     string
}

// Courses группирует курсы по роли пользователя, ключ - ID курса
type Courses struct {
	Instructor map[string]Course
	Student    map[string]Course
}

type Member struct {
	UserID         string
	FullName       string
	FirstName      string
	LastName       string
	SID            string
	Email          string
	Role           string
	NumSubmissions int
	CourseID       string
}
