package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	dto "gradescope_proxy/internal/api/dto/upload"
	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/req"
	"gradescope_proxy/pkg/resp"
)

const (
	maxUploadSize = 64 << 20
	maxMemory     = 16 << 20
	// Поле multipart с файлами
	filesField = "file"
)

type HandlerDeps struct {
	Serv service.UploadService
}

type Handler struct {
	serv service.UploadService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Upload принимает multipart с полями file и отправляет их как сабмишн
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	ids, err := req.Queries(r, "course_id", "assignment_id")
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		resp.WriteError(w, apperr.Wrap(apperr.KindInvalidRequest, err, "invalid multipart body"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := readFiles(r.MultipartForm.File[filesField])
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	link, err := h.serv.Upload(r.Context(), entry.Upstream, model.Upload{
		CourseID:        ids[0],
		AssignmentID:    ids[1],
		LeaderboardName: strings.TrimSpace(r.URL.Query().Get("leaderboard_name")),
		Files:           files,
	})
	if err != nil {
		log.Printf("Upload error (course %s, assignment %s): %v", ids[0], ids[1], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.UploadResponse{SubmissionLink: link})
}

func readFiles(headers []*multipart.FileHeader) ([]model.UploadFile, error) {
	if len(headers) == 0 {
		return nil, apperr.New(apperr.KindInvalidRequest, fmt.Sprintf("multipart field %q with at least one file is required", filesField))
	}

	files := make([]model.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidRequest, err, "open uploaded file "+fh.Filename)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInvalidRequest, err, "read uploaded file "+fh.Filename)
		}
		files = append(files, model.UploadFile{Name: fh.Filename, Content: content})
	}
	return files, nil
}
