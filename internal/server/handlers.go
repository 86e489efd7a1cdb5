package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/models"
)

type searchRequest struct {
	Query       string `json:"query"`
	K           int    `json:"k,omitempty"`
	IncludeText bool   `json:"include_text,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordError()
		s.respondError(w, http.StatusBadRequest, "invalid request body", models.ErrValidation)
		return
	}
	s.logger.Debug("answer request",
		zap.String("query", req.Query),
		zap.Int("k", req.K),
		zap.String("provider", req.Provider))

	rsp, err := s.orchestrator.Answer(r.Context(), &req)
	if err != nil {
		s.respondPipelineError(w, "answer failed", err)
		return
	}
	s.metrics.RecordAnswer(rsp.Answer == answer.Refusal)
	s.respondJSON(w, http.StatusOK, rsp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordError()
		s.respondError(w, http.StatusBadRequest, "invalid request body", models.ErrValidation)
		return
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("k", req.K))

	rsp, err := s.orchestrator.Search(r.Context(), req.Query, req.K, req.IncludeText)
	if err != nil {
		s.respondPipelineError(w, "search failed", err)
		return
	}
	s.metrics.RecordSearch()
	s.respondJSON(w, http.StatusOK, rsp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.retriever.Status()
	status.Providers = s.orchestrator.Providers()
	s.respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// respondPipelineError translates a classified pipeline error into a
// status code and the error envelope.
func (s *Server) respondPipelineError(w http.ResponseWriter, msg string, err error) {
	s.metrics.RecordError()
	kind := models.KindOf(err)
	if kind == models.ErrValidation {
		s.logger.Debug(msg, zap.Error(err))
	} else {
		s.logger.Error(msg, zap.Error(err), zap.String("kind", string(kind)))
	}
	s.respondError(w, statusForKind(kind), err.Error(), kind)
}

func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrValidation:
		return http.StatusBadRequest
	case models.ErrTimeout:
		return http.StatusGatewayTimeout
	case models.ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, kind models.ErrorKind) {
	s.respondJSON(w, status, map[string]string{"error": message, "kind": string(kind)})
}
