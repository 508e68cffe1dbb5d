package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/pos/store"
)

func RespondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func ParseBody(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// RespondError maps domain error sentinels to HTTP status codes. All
// domain errors are recoverable at this boundary; nothing here is fatal
// to the process.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrInvariant):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logrus.WithError(err).Error("unhandled error")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
