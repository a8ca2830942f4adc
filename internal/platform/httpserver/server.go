package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	pressservice "caucus/contexts/content/press-service"
	digitalauditservice "caucus/contexts/endorsement/digital-audit-service"
	vettingservice "caucus/contexts/endorsement/vetting-service"
	membershipservice "caucus/contexts/identity/membership-service"
	_ "caucus/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	vetting    vettingservice.Module
	audit      digitalauditservice.Module
	press      pressservice.Module
	membership membershipservice.Module
}

func New(
	vetting vettingservice.Module,
	audit digitalauditservice.Module,
	press pressservice.Module,
	membership membershipservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		vetting:    vetting,
		audit:      audit,
		press:      press,
		membership: membership,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /vettings", s.handleOpenVetting)
	s.mux.HandleFunc("GET /vettings", s.handleListVettings)
	s.mux.HandleFunc("GET /vettings/{vetting_id}", s.handleGetVettingReport)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/stage", s.handleAdvanceStage)
	s.mux.HandleFunc("PUT /vettings/{vetting_id}/sections/{section_type}", s.handleUpsertSection)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/sections/{section_type}/approve", s.handleApproveSection)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/sections/{section_type}/reopen", s.handleReopenSection)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/recommendation", s.handleSetRecommendation)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /vettings/{vetting_id}/votes/finalize", s.handleFinalize)

	s.mux.HandleFunc("POST /vettings/{vetting_id}/audit", s.handleTriggerAudit)
	s.mux.HandleFunc("GET /vettings/{vetting_id}/audit", s.handleGetLatestAudit)

	s.mux.HandleFunc("GET /posts/{post_id}", s.handleGetPost)

	s.mux.HandleFunc("GET /members/{member_id}/roles", s.handleGetRoles)
	s.mux.HandleFunc("POST /members/{member_id}/roles/grant", s.handleGrantRole)
	s.mux.HandleFunc("POST /members/{member_id}/roles/revoke", s.handleRevokeRole)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
