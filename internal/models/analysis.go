// internal/models/analysis.go
package models

import (
	"time"

	"calorie-coach/internal/metrics"
)

// AnalysisRecord is one completed food analysis kept in history.
type AnalysisRecord struct {
	ID                string              `json:"id"`
	CreatedAt         time.Time           `json:"created_at"`
	Profile           metrics.BodyProfile `json:"profile"`
	RecommendedIntake int                 `json:"recommended_intake"`
	MediaType         string              `json:"media_type"`
	Model             string              `json:"model"`
	Report            string              `json:"report"`
}

type FailureKind string

const (
	ConfigurationFailure FailureKind = "configuration"
	AnalysisFailure      FailureKind = "analysis"
)

type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// View is what one interaction hands back to the caller: the metrics always,
// then either the analysis text or a failure when a photo was supplied.
type View struct {
	Metrics  metrics.Result `json:"metrics"`
	Analysis string         `json:"analysis,omitempty"`
	Failure  *Failure       `json:"failure,omitempty"`
}
