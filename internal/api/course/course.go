package course

import (
	"log"
	"net/http"

	"gradescope_proxy/internal/converter"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/req"
	"gradescope_proxy/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CourseService
}

type Handler struct {
	serv service.CourseService
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

	courses, err := h.serv.List(r.Context(), entry.Upstream)
	if err != nil {
		log.Printf("List courses error: %v", err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCoursesResponse(*courses))
}

// Members - участники курса, только для преподавателя
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.serv.Members(r.Context(), entry.Upstream, courseID)
	if err != nil {
		log.Printf("Course members error (course %s): %v", courseID, err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMembersResponse(members))
}
