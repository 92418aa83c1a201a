package resp

import (
	"encoding/json"
	"log"
	"net/http"

	"gradescope_proxy/internal/apperr"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[resp] encode response: %v", err)
	}
}

// WriteError пишет ошибку в формате {"error": kind, "message": text}
// со статусом по классификации apperr.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSONResponse(w, apperr.HTTPStatus(err), errorBody{
		Error:   string(apperr.KindOf(err)),
		Message: apperr.Message(err),
	})
}
