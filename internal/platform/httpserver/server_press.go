package httpserver

import (
	"errors"
	"net/http"

	presserrors "caucus/contexts/content/press-service/domain/errors"
)

type pressErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	resp, err := s.press.Handler.GetPostHandler(r.Context(), r.PathValue("post_id"))
	if err != nil {
		writePressDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePressDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, presserrors.ErrPostNotFound):
		writePressError(w, http.StatusNotFound, "post_not_found", err.Error())
	case errors.Is(err, presserrors.ErrInvalidPost):
		writePressError(w, http.StatusBadRequest, "invalid_post", err.Error())
	case errors.Is(err, presserrors.ErrSlugTaken):
		writePressError(w, http.StatusConflict, "slug_taken", err.Error())
	default:
		writePressError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePressError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pressErrorResponse{
		Code:    code,
		Message: message,
	})
}
