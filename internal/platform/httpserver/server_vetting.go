package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	vettingerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	vettinghttp "caucus/contexts/endorsement/vetting-service/transport/http"
)

func requireMember(w http.ResponseWriter, r *http.Request) (string, bool) {
	memberID := strings.TrimSpace(r.Header.Get("X-Member-Id"))
	if memberID == "" {
		writeVettingError(w, http.StatusUnauthorized, "missing_member", "X-Member-Id header is required")
		return "", false
	}
	return memberID, true
}

func (s *Server) handleOpenVetting(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	var req vettinghttp.OpenVettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVettingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.vetting.Handler.OpenVettingHandler(r.Context(), memberID, req)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVettings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.vetting.Handler.ListVettingsHandler(r.Context())
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVettingReport(w http.ResponseWriter, r *http.Request) {
	resp, err := s.vetting.Handler.GetReportHandler(r.Context(), r.PathValue("vetting_id"))
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdvanceStage(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	var req vettinghttp.AdvanceStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVettingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.vetting.Handler.AdvanceStageHandler(r.Context(), memberID, r.PathValue("vetting_id"), req)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpsertSection(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	var req vettinghttp.UpsertSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVettingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.vetting.Handler.UpsertSectionHandler(
		r.Context(),
		memberID,
		r.PathValue("vetting_id"),
		r.PathValue("section_type"),
		req,
	)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveSection(w http.ResponseWriter, r *http.Request) {
	s.handleSectionReview(w, r, true)
}

func (s *Server) handleReopenSection(w http.ResponseWriter, r *http.Request) {
	s.handleSectionReview(w, r, false)
}

func (s *Server) handleSectionReview(w http.ResponseWriter, r *http.Request, approve bool) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	resp, err := s.vetting.Handler.ReviewSectionHandler(
		r.Context(),
		memberID,
		r.PathValue("vetting_id"),
		r.PathValue("section_type"),
		approve,
	)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetRecommendation(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	var req vettinghttp.SetRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVettingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.vetting.Handler.SetRecommendationHandler(r.Context(), memberID, r.PathValue("vetting_id"), req)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	var req vettinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVettingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.vetting.Handler.CastVoteHandler(r.Context(), memberID, r.PathValue("vetting_id"), req)
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	memberID, ok := requireMember(w, r)
	if !ok {
		return
	}
	resp, err := s.vetting.Handler.FinalizeHandler(r.Context(), memberID, r.PathValue("vetting_id"))
	if err != nil {
		writeVettingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVettingDomainError(w http.ResponseWriter, err error) {
	var transitionErr *vettingerrors.TransitionError
	if errors.As(err, &transitionErr) {
		writeJSON(w, http.StatusBadRequest, vettinghttp.ErrorResponse{
			Code:          "invalid_transition",
			Message:       transitionErr.Error(),
			AllowedStages: transitionErr.AllowedStages,
		})
		return
	}
	switch {
	case errors.Is(err, vettingerrors.ErrVettingNotFound),
		errors.Is(err, vettingerrors.ErrSectionNotFound):
		writeVettingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, vettingerrors.ErrForbidden):
		writeVettingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, vettingerrors.ErrInvalidTransition),
		errors.Is(err, vettingerrors.ErrFinalizeOnly):
		writeVettingError(w, http.StatusBadRequest, "invalid_transition", err.Error())
	case errors.Is(err, vettingerrors.ErrSectionsIncomplete),
		errors.Is(err, vettingerrors.ErrRecommendationMissing):
		writeVettingError(w, http.StatusConflict, "board_vote_gate", err.Error())
	case errors.Is(err, vettingerrors.ErrRecommendationLocked):
		writeVettingError(w, http.StatusConflict, "recommendation_locked", err.Error())
	case errors.Is(err, vettingerrors.ErrInvalidStage):
		writeVettingError(w, http.StatusBadRequest, "invalid_stage", err.Error())
	case errors.Is(err, vettingerrors.ErrAlreadyFinalized):
		writeVettingError(w, http.StatusConflict, "already_finalized", err.Error())
	case errors.Is(err, vettingerrors.ErrInsufficientVotes):
		writeVettingError(w, http.StatusBadRequest, "insufficient_votes", err.Error())
	case errors.Is(err, vettingerrors.ErrTieVote):
		writeVettingError(w, http.StatusBadRequest, "tie_vote", err.Error())
	case errors.Is(err, vettingerrors.ErrConcurrentFinalization):
		writeVettingError(w, http.StatusConflict, "concurrent_finalization", err.Error())
	case errors.Is(err, vettingerrors.ErrVoteLocked):
		writeVettingError(w, http.StatusConflict, "vote_locked", err.Error())
	case errors.Is(err, vettingerrors.ErrInvalidVettingInput),
		errors.Is(err, vettingerrors.ErrInvalidSectionType),
		errors.Is(err, vettingerrors.ErrInvalidVoteValue):
		writeVettingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeVettingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVettingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, vettinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
