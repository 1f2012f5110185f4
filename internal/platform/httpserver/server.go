package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	cafeservice "cafescout/contexts/discovery/cafe-service"
	ratingservice "cafescout/contexts/discovery/rating-service"
	approvalpipeline "cafescout/contexts/moderation/approval-pipeline"
	submissionservice "cafescout/contexts/moderation/submission-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "cafescout/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	cafes       cafeservice.Module
	ratings     ratingservice.Module
	submissions submissionservice.Module
	pipeline    approvalpipeline.Module
}

func New(
	cafes cafeservice.Module,
	ratings ratingservice.Module,
	submissions submissionservice.Module,
	pipeline approvalpipeline.Module,
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
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		cafes:       cafes,
		ratings:     ratings,
		submissions: submissions,
		pipeline:    pipeline,
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

	s.mux.HandleFunc("GET /api/cafes", s.handleListCafes)
	s.mux.HandleFunc("GET /api/cafes/search", s.handleSearchCafes)
	s.mux.HandleFunc("GET /api/cafes/{cafe_id}", s.handleGetCafe)
	s.mux.HandleFunc("POST /api/cafes", s.handleCreateCafe)
	s.mux.HandleFunc("PATCH /api/cafes/{cafe_id}", s.handleUpdateCafe)
	s.mux.HandleFunc("POST /api/cafes/{cafe_id}/hide", s.handleHideCafe)

	s.mux.HandleFunc("PUT /api/cafes/{cafe_id}/rating", s.handleRateCafe)
	s.mux.HandleFunc("DELETE /api/cafes/{cafe_id}/rating", s.handleRemoveRating)
	s.mux.HandleFunc("GET /api/cafes/{cafe_id}/ratings", s.handleListRatings)
	s.mux.HandleFunc("GET /api/cafes/{cafe_id}/ratings/summary", s.handleRatingSummary)

	s.mux.HandleFunc("POST /api/submissions", s.handleCreateSubmission)
	s.mux.HandleFunc("GET /api/submissions", s.handleListSubmissions)
	s.mux.HandleFunc("GET /api/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("POST /api/submissions/{submission_id}/approve", s.handleApproveSubmission)
	s.mux.HandleFunc("POST /api/submissions/{submission_id}/reject", s.handleRejectSubmission)
	s.mux.HandleFunc("POST /api/submissions/{submission_id}/flag", s.handleFlagSubmission)
	s.mux.HandleFunc("POST /api/submissions/{submission_id}/photo", s.handleAttachPhoto)

	s.mux.HandleFunc("POST /api/cron/process-submissions", s.handleProcessSubmissions)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
