package assignment

import (
	"log"
	"net/http"

	dto "gradescope_proxy/internal/api/dto/assignment"
	"gradescope_proxy/internal/converter"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/req"
	"gradescope_proxy/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AssignmentService
}

type Handler struct {
	serv service.AssignmentService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	courseID, err := req.Query(r, "course_id")
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	assignments, err := h.serv.List(r.Context(), entry.Upstream, courseID)
	if err != nil {
		log.Printf("List assignments error (course %s): %v", courseID, err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAssignmentsResponse(assignments))
}

// Submissions - ссылки на файлы всех сабмишнов задания
func (h *Handler) Submissions(w http.ResponseWriter, r *http.Request) {
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

	submissions, err := h.serv.Submissions(r.Context(), entry.Upstream, ids[0], ids[1])
	if err != nil {
		log.Printf("Assignment submissions error (course %s, assignment %s): %v", ids[0], ids[1], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, submissions)
}

// StudentSubmission - ссылки на файлы сабмишна одного студента
func (h *Handler) StudentSubmission(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	params, err := req.Queries(r, "student_email", "course_id", "assignment_id")
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	files, err := h.serv.StudentSubmission(r.Context(), entry.Upstream, params[0], params[1], params[2])
	if err != nil {
		log.Printf("Student submission error (course %s, assignment %s): %v", params[1], params[2], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, files)
}

func (h *Handler) UpdateDates(w http.ResponseWriter, r *http.Request) {
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
	payload, err := req.Decode[dto.DatesRequest](r.Body)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	err = h.serv.UpdateDates(r.Context(), entry.Upstream, ids[0], ids[1], converter.ToAssignmentDates(payload))
	if err != nil {
		log.Printf("Update dates error (course %s, assignment %s): %v", ids[0], ids[1], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Assignment dates updated successfully"})
}
