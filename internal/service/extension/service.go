package extension

import (
	"fmt"
	"net/url"

	"gradescope_proxy/internal/service"
)

type serv struct{}

func NewService() service.ExtensionService {
	return &serv{}
}

func extensionsPath(courseID, assignmentID string) string {
	return fmt.Sprintf("/courses/%s/assignments/%s/extensions", url.PathEscape(courseID), url.PathEscape(assignmentID))
}
