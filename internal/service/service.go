package service

import (
	"context"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (model.SessionEntry, error)
}

// Сервисы ниже работают от имени пользователя: upstream сессию
// передаёт middleware авторизации.

type CourseService interface {
	List(ctx context.Context, sess *upstream.Session) (*model.Courses, error)
	Members(ctx context.Context, sess *upstream.Session, courseID string) ([]model.Member, error)
}

type AssignmentService interface {
	List(ctx context.Context, sess *upstream.Session, courseID string) ([]model.Assignment, error)
	Submissions(ctx context.Context, sess *upstream.Session, courseID, assignmentID string) (map[string][]string, error)
	StudentSubmission(ctx context.Context, sess *upstream.Session, email, courseID, assignmentID string) ([]string, error)
	UpdateDates(ctx context.Context, sess *upstream.Session, courseID, assignmentID string, dates model.AssignmentDates) error
}

type ExtensionService interface {
	List(ctx context.Context, sess *upstream.Session, courseID, assignmentID string) (map[string]model.Extension, error)
	Update(ctx context.Context, sess *upstream.Session, courseID, assignmentID, userID string, dates model.AssignmentDates) error
}

type UploadService interface {
	Upload(ctx context.Context, sess *upstream.Session, upload model.Upload) (string, error)
}
