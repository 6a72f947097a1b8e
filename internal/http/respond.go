package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jeamar123/budget-api/internal/core"
	"github.com/jeamar123/budget-api/internal/log"
)

// respond writes the envelope: the payload keys merged with "message" and
// "status".
func (s *Server) respond(w http.ResponseWriter, status int, payload map[string]any, message string, ok bool) {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["message"] = message
	body["status"] = ok

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", log.FieldError, err)
	}
}

func (s *Server) respondOK(w http.ResponseWriter, payload map[string]any, message string) {
	s.respond(w, http.StatusOK, payload, message, true)
}

func (s *Server) respondCreated(w http.ResponseWriter, message string) {
	s.respond(w, http.StatusCreated, nil, message, true)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, nil, message, false)
}

// writeError maps a domain error to its envelope. Validation failures carry
// their own reason, absent records use the conventional "<Entity> not found"
// message, and anything unexpected becomes a 500 with failMessage.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, failMessage string) {
	var ve *core.ValidationError
	var nf *core.NotFoundError
	var cf *core.ConflictError
	switch {
	case errors.As(err, &ve):
		s.respondError(w, http.StatusBadRequest, ve.Reason)
	case errors.As(err, &nf):
		s.respondError(w, http.StatusNotFound, notFoundMessage(nf.Entity))
	case errors.As(err, &cf):
		s.respondError(w, http.StatusConflict, cf.Reason)
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			log.FieldRequestID, requestID(r.Context()),
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		s.respondError(w, http.StatusInternalServerError, failMessage)
	}
}

func notFoundMessage(entity string) string {
	if entity == "" {
		return "Not found"
	}
	head := entity[:1]
	if head >= "a" && head <= "z" {
		head = string(entity[0] - 'a' + 'A')
	}
	return head + entity[1:] + " not found"
}
