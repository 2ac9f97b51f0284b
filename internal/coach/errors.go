// internal/coach/errors.go
package coach

import (
	"errors"
	"fmt"

	"calorie-coach/internal/models"
)

// AnalysisFailedLabel prefixes every analysis failure shown to the user.
const AnalysisFailedLabel = "analysis failed: "

var ErrMissingCredential = errors.New("GOOGLE_API_KEY is not configured")

type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

type AnalysisRequestError struct {
	Err error
}

func (e *AnalysisRequestError) Error() string {
	return AnalysisFailedLabel + e.Err.Error()
}

func (e *AnalysisRequestError) Unwrap() error { return e.Err }

// failureFrom maps the two session failure kinds onto the view's Failure.
func failureFrom(err error) *models.Failure {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return &models.Failure{Kind: models.ConfigurationFailure, Message: cfgErr.Error()}
	}
	return &models.Failure{Kind: models.AnalysisFailure, Message: err.Error()}
}
