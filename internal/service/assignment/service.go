package assignment

import (
	"fmt"
	"net/url"

	"gradescope_proxy/internal/service"
)

// Не больше стольких запросов к upstream одновременно на один вызов
const maxConcurrentFetches = 4

type serv struct {
	maxConcurrent int
}

func NewService() service.AssignmentService {
	return &serv{maxConcurrent: maxConcurrentFetches}
}

func assignmentPath(courseID, assignmentID string) string {
	return fmt.Sprintf("/courses/%s/assignments/%s", url.PathEscape(courseID), url.PathEscape(assignmentID))
}
