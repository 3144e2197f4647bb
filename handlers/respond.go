package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dhruv-809/mini-project-manager/store"
)

// respondWithJSON formats and sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError sends the {"message": ...} error shape the client
// expects.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

// respondStoreError maps store failures onto HTTP responses. notFoundMsg
// covers both a genuinely absent record and one owned by another user;
// the two must stay indistinguishable. Anything unexpected becomes an
// opaque 500.
func (h *Handlers) respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	var vErr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error())
	default:
		h.logger.Error("store failure", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Server error")
	}
}
