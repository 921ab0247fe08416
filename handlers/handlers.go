package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"linkup/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the error taxonomy onto transport status codes.
// Validation and conflict failures both surface as 400, matching the
// public API contract. Internal failures never leak details to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrAuth):
		writeMessage(w, http.StatusUnauthorized, "Not authorized, please login")
	case errors.Is(err, apperrors.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled error")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
