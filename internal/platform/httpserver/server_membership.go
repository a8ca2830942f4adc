package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	membershiperrors "caucus/contexts/identity/membership-service/domain/errors"
	membershiphttp "caucus/contexts/identity/membership-service/transport/http"
)

type membershipErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleGetRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.membership.Handler.GetRolesHandler(r.Context(), r.PathValue("member_id"))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	s.handleRoleChange(w, r, true)
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	s.handleRoleChange(w, r, false)
}

func (s *Server) handleRoleChange(w http.ResponseWriter, r *http.Request, grant bool) {
	actorID, ok := requireMembershipActor(w, r)
	if !ok {
		return
	}
	var req membershiphttp.RoleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	memberID := r.PathValue("member_id")
	var (
		resp membershiphttp.MemberResponse
		err  error
	)
	if grant {
		resp, err = s.membership.Handler.GrantRoleHandler(r.Context(), actorID, memberID, req)
	} else {
		resp, err = s.membership.Handler.RevokeRoleHandler(r.Context(), actorID, memberID, req)
	}
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireMembershipActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := r.Header.Get("X-Member-Id")
	if actorID == "" {
		writeMembershipError(w, http.StatusUnauthorized, "missing_member", "X-Member-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membershiperrors.ErrMemberNotFound):
		writeMembershipError(w, http.StatusNotFound, "member_not_found", err.Error())
	case errors.Is(err, membershiperrors.ErrForbidden):
		writeMembershipError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, membershiperrors.ErrInvalidRole):
		writeMembershipError(w, http.StatusBadRequest, "invalid_role", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershipErrorResponse{
		Code:    code,
		Message: message,
	})
}
