package upload

import (
	"gradescope_proxy/internal/service"
)

type serv struct{}

func NewService() service.UploadService {
	return &serv{}
}
