package health

import (
	"net/http"

	"gradescope_proxy/pkg/resp"
)

// SessionCounter - число живых сессий (реестр)
type SessionCounter interface {
	Count() int
}

type HandlerDeps struct {
	Sessions SessionCounter
}

type Handler struct {
	sessions SessionCounter
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{sessions: deps.Sessions}
}

type response struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, response{
		Status:   "ok",
		Sessions: h.sessions.Count(),
	})
}
