package extension

import (
	"log"
	"net/http"

	assignmentDTO "gradescope_proxy/internal/api/dto/assignment"
	"gradescope_proxy/internal/converter"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/req"
	"gradescope_proxy/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ExtensionService
}

type Handler struct {
	serv service.ExtensionService
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
	ids, err := req.Queries(r, "course_id", "assignment_id")
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	extensions, err := h.serv.List(r.Context(), entry.Upstream, ids[0], ids[1])
	if err != nil {
		log.Printf("List extensions error (course %s, assignment %s): %v", ids[0], ids[1], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToExtensionsResponse(extensions))
}

// Update задаёт продление студенту user_id
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	ids, err := req.Queries(r, "course_id", "assignment_id", "user_id")
	if err != nil {
		resp.WriteError(w, err)
		return
	}
	payload, err := req.Decode[assignmentDTO.DatesRequest](r.Body)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	err = h.serv.Update(r.Context(), entry.Upstream, ids[0], ids[1], ids[2], converter.ToAssignmentDates(payload))
	if err != nil {
		log.Printf("Update extension error (course %s, assignment %s, user %s): %v", ids[0], ids[1], ids[2], err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, assignmentDTO.MessageResponse{Message: "Extension updated successfully"})
}
