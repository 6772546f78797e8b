package mux

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/handstore"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string       `json:"message"`
	StatusCode int          `json:"statusCode"`
	Kind       handerr.Kind `json:"kind,omitempty"`
}

// if err is handstore.ErrNotFound, treat as 404, otherwise treat as a 500
func writeMaybeNotFoundError(w http.ResponseWriter, err error) {
	if errors.Is(err, handstore.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, nil)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

// writeSettlementError maps a settlement failure to a response
// Rule violations are the caller's fault at the table, so they are a 400.
// Every other kind of bad input is a 422.
func writeSettlementError(w http.ResponseWriter, err error) {
	kind := handerr.KindOf(err)
	switch kind {
	case "":
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	case handerr.RuleViolation:
		writeJSONErrorKind(w, http.StatusBadRequest, kind, err)
	default:
		writeJSONErrorKind(w, http.StatusUnprocessableEntity, kind, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	writeJSONErrorKind(w, statusCode, "", err)
}

func writeJSONErrorKind(w http.ResponseWriter, statusCode int, kind handerr.Kind, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
		Kind:       kind,
	})
}
