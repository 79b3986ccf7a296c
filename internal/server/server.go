package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/solwatch/walletwatch/internal/config"
	"github.com/solwatch/walletwatch/internal/metrics"
	"github.com/solwatch/walletwatch/internal/processor"
)

// Server is the webhook ingress. It owns no business logic: it authenticates
// the request, decodes the body and hands the batch to the processor.
type Server struct {
	cfg  *config.Config
	proc *processor.Processor
	log  *logrus.Logger
	http *http.Server
}

// New creates the ingress server.
func New(cfg *config.Config, proc *processor.Processor, log *logrus.Logger) *Server {
	s := &Server{
		cfg:  cfg,
		proc: proc,
		log:  log,
	}

	r := mux.NewRouter()
	r.HandleFunc("/webhook", s.handleWebhook).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ListenPort),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the server until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.http.Addr).Info("Starting webhook server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleWebhook accepts one event object or an array of events per call.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		metrics.WebhookRequests.WithLabelValues("unauthorized").Inc()
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		metrics.WebhookRequests.WithLabelValues("bad_request").Inc()
		http.Error(w, `{"error":"read body"}`, http.StatusBadRequest)
		return
	}

	events, err := decodeEvents(body)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues("bad_request").Inc()
		s.log.WithError(err).Warn("Undecodable webhook body")
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	summary, err := s.proc.ProcessBatch(r.Context(), events)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues("unavailable").Inc()
		s.log.WithError(err).Error("Batch processing failed")
		http.Error(w, `{"error":"watch list unavailable"}`, http.StatusServiceUnavailable)
		return
	}

	metrics.WebhookRequests.WithLabelValues("ok").Inc()
	s.log.WithFields(logrus.Fields{
		"received":     summary.Received,
		"type_matched": summary.TypeMatched,
		"tracked":      summary.Tracked,
		"cooldown":     summary.CooldownSuppressed,
		"emitted":      summary.Emitted,
	}).Info("Batch processed")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.log.WithError(err).Error("Failed to write response")
	}
}

// authorized checks the shared-secret header. When no token is configured
// every request is accepted.
func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.WebhookAuthToken == "" {
		return true
	}
	return r.Header.Get("Authorization") == s.cfg.WebhookAuthToken
}

// decodeEvents accepts either a JSON array of events or a single object.
func decodeEvents(body []byte) ([]map[string]any, error) {
	var events []map[string]any
	if err := json.Unmarshal(body, &events); err == nil {
		return events, nil
	}

	var single map[string]any
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("body is neither an event array nor an event object: %w", err)
	}
	return []map[string]any{single}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics.RecordHealthCheck(true)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"healthy"}`)
}
