// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"calorie-coach/internal/analyzer"
	"calorie-coach/internal/coach"
	"calorie-coach/internal/metrics"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

type toolHandler func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

// toolError carries the HTTP status a failed tool call is reported with.
type toolError struct {
	status int
	err    error
}

func (e *toolError) Error() string { return e.err.Error() }
func (e *toolError) Unwrap() error { return e.err }

func badRequest(format string, args ...interface{}) error {
	return &toolError{status: http.StatusBadRequest, err: fmt.Errorf(format, args...)}
}

type ProfileParams struct {
	Sex           string `json:"sex" description:"Biological sex: male or female"`
	AgeYears      int    `json:"age_years" description:"Age in years (10-100)"`
	HeightCm      int    `json:"height_cm" description:"Height in centimeters (100-250)"`
	WeightKg      int    `json:"weight_kg" description:"Weight in kilograms (30-200)"`
	ActivityLevel string `json:"activity_level" description:"One of sedentary, light, moderate, active, very_active"`
	ExternalKcal  int    `json:"external_energy_expenditure_kcal,omitempty" description:"Active energy measured by a wearable today"`
}

type AnalyzeFoodParams struct {
	ProfileParams
	ImageBase64 string `json:"image_base64" description:"Food photo, base64 or data URI (jpeg or png)"`
	MediaType   string `json:"media_type,omitempty" description:"image/jpeg or image/png"`
}

type ListAnalysesParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of analyses to return"`
}

// extractParams converts the request arguments into target.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return badRequest("failed to marshal arguments: %v", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return badRequest("invalid parameters: %v", err)
	}

	return nil
}

func (p ProfileParams) profile() (metrics.BodyProfile, error) {
	sex, err := metrics.ParseSex(p.Sex)
	if err != nil {
		return metrics.BodyProfile{}, &toolError{status: http.StatusBadRequest, err: err}
	}
	return metrics.BodyProfile{
		Sex:           sex,
		AgeYears:      p.AgeYears,
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		ActivityLevel: metrics.ActivityLevel(p.ActivityLevel),
		ExternalKcal:  p.ExternalKcal,
	}, nil
}

// handle runs one interaction through the coach and maps input errors to 400.
func (s *CoachServer) handle(ctx context.Context, req coach.Request) (*protocol.CallToolResult, error) {
	view, err := s.coach.Handle(ctx, req)
	if err != nil {
		var invalid *metrics.InvalidInputError
		var unknown *metrics.UnknownActivityLevelError
		if errors.As(err, &invalid) || errors.As(err, &unknown) {
			return nil, &toolError{status: http.StatusBadRequest, err: err}
		}
		return nil, err
	}
	return s.createJSONResponse(view, view.Failure != nil)
}

func (s *CoachServer) handleComputeMetrics(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	profile, err := params.profile()
	if err != nil {
		return nil, err
	}

	return s.handle(ctx, coach.Request{Profile: profile})
}

func (s *CoachServer) handleAnalyzeFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AnalyzeFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	profile, err := params.profile()
	if err != nil {
		return nil, err
	}

	if params.ImageBase64 == "" {
		return nil, badRequest("image_base64 is required")
	}
	img, err := analyzer.ParseImage(params.MediaType, params.ImageBase64)
	if err != nil {
		return nil, &toolError{status: http.StatusBadRequest, err: err}
	}

	return s.handle(ctx, coach.Request{Profile: profile, Image: &img})
}

func (s *CoachServer) handleListAnalyses(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if s.history == nil {
		return nil, &toolError{status: http.StatusNotImplemented, err: fmt.Errorf("analysis history is disabled")}
	}

	var params ListAnalysesParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}

	records, err := s.history.ListAnalyses(ctx, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analyses: %w", err)
	}

	return s.createJSONResponse(records, false)
}

func (s *CoachServer) handleListActivityLevels(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(metrics.Levels(), false)
}

func (s *CoachServer) registerTools() {
	s.tools = map[string]toolHandler{
		"compute_metrics":      s.handleComputeMetrics,
		"analyze_food":         s.handleAnalyzeFood,
		"list_analyses":        s.handleListAnalyses,
		"list_activity_levels": s.handleListActivityLevels,
	}

	for name := range s.tools {
		s.log.WithField("tool", name).Debug("registered tool")
	}
}
