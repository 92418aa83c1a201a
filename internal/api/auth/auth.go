package auth

import (
	"log"
	"net/http"

	dto "gradescope_proxy/internal/api/dto/auth"
	"gradescope_proxy/internal/converter"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/req"
	"gradescope_proxy/pkg/resp"
	"gradescope_proxy/pkg/token"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Login проводит вход на upstream и возвращает токен сессии
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	result, err := h.serv.Login(r.Context(), converter.ToCredentials(requestBody))
	if err != nil {
		log.Printf("Login error for %s: %v", requestBody.Email, err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLoginResponse(*result))
}

// Logout отзывает текущую сессию
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	if err := h.serv.Logout(r.Context(), entry.Token); err != nil {
		log.Printf("Logout error for session %s: %v", token.Fingerprint(entry.Token), err)
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LogoutResponse{Status: "logged out"})
}

// Session возвращает сведения о текущей сессии
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	entry, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		resp.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(entry))
}
