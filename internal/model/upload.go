package model

type UploadFile struct {
	Name    string
	Content []byte
}

type Upload struct {
	CourseID        string
	AssignmentID    string
	LeaderboardName string
	Files           []UploadFile
}
