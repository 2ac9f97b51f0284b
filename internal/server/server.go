// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"calorie-coach/internal/coach"
	"calorie-coach/internal/config"
	"calorie-coach/internal/models"
)

const shutdownTimeout = 10 * time.Second

// History lists recorded analyses. A nil History disables list_analyses.
type History interface {
	ListAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
}

// CoachServer answers MCP tools/call bodies posted over plain HTTP.
type CoachServer struct {
	httpServer *http.Server
	coach      *coach.Coach
	history    History
	config     *config.Config
	log        logrus.FieldLogger
	tools      map[string]toolHandler
}

func NewCoachServer(cfg *config.Config, c *coach.Coach, history History, log logrus.FieldLogger) (*CoachServer, error) {
	s := &CoachServer{
		coach:   c,
		history: history,
		config:  cfg,
		log:     log,
	}

	s.registerTools()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}

	return s, nil
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *CoachServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleToolCall).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

func (s *CoachServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":            "ok",
		"analysis_ready":    s.coach.Ready() == nil,
		"history_enabled":   s.history != nil,
		"configured_model":  s.config.Model,
		"configured_prompt": s.config.PromptStyle,
	}
	if err := s.coach.Ready(); err != nil {
		status["analysis_error"] = err.Error()
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *CoachServer) handleToolCall(w http.ResponseWriter, r *http.Request) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	log := s.log.WithField("tool", request.Name)

	handler, ok := s.tools[request.Name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown tool: %s", request.Name), http.StatusNotFound)
		return
	}

	result, err := handler(r.Context(), &request)
	if err != nil {
		status := http.StatusInternalServerError
		var te *toolError
		if errors.As(err, &te) {
			status = te.status
		}
		log.WithError(err).WithField("status", status).Warn("tool call failed")
		http.Error(w, err.Error(), status)
		return
	}

	log.Debug("tool call completed")
	s.writeJSON(w, http.StatusOK, result)
}

func (s *CoachServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

// Start serves until Stop is called or ctx is cancelled.
func (s *CoachServer) Start(ctx context.Context) error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting calorie coach server")

	served := make(chan struct{})
	defer close(served)
	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.log.WithError(err).Error("shutdown after cancellation failed")
			}
		case <-served:
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *CoachServer) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *CoachServer) createJSONResponse(data interface{}, isError bool) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
		IsError: isError,
	}, nil
}
