package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	auditerrors "caucus/contexts/endorsement/digital-audit-service/domain/errors"
	audithttp "caucus/contexts/endorsement/digital-audit-service/transport/http"
)

func (s *Server) handleTriggerAudit(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	// The body is optional; an empty body means a plain trigger.
	var req audithttp.TriggerAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeAuditError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}
	resp, err := s.audit.Handler.TriggerAuditHandler(r.Context(), memberID, r.PathValue("vetting_id"), req)
	if err != nil {
		writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleGetLatestAudit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.audit.Handler.GetLatestAuditHandler(r.Context(), r.PathValue("vetting_id"))
	if err != nil {
		writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuditDomainError(w http.ResponseWriter, err error) {
	var dupErr *auditerrors.DuplicateAuditError
	switch {
	case errors.As(err, &dupErr):
		writeAuditError(w, http.StatusConflict, "duplicate_audit", dupErr.Error(), dupErr.AuditID)
	case errors.Is(err, auditerrors.ErrDuplicateAudit),
		errors.Is(err, auditerrors.ErrAuditRunning):
		writeAuditError(w, http.StatusConflict, "duplicate_audit", err.Error(), "")
	case errors.Is(err, auditerrors.ErrVettingNotFound),
		errors.Is(err, auditerrors.ErrAuditNotFound):
		writeAuditError(w, http.StatusNotFound, "not_found", err.Error(), "")
	case errors.Is(err, auditerrors.ErrForbidden):
		writeAuditError(w, http.StatusForbidden, "forbidden", err.Error(), "")
	default:
		writeAuditError(w, http.StatusInternalServerError, "internal_error", "internal server error", "")
	}
}

func writeAuditError(w http.ResponseWriter, status int, code string, message string, auditID string) {
	writeJSON(w, status, audithttp.ErrorResponse{
		Code:    code,
		Message: message,
		AuditID: auditID,
	})
}
