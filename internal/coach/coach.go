// internal/coach/coach.go
package coach

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"calorie-coach/internal/analyzer"
	"calorie-coach/internal/metrics"
	"calorie-coach/internal/models"
)

// Recorder keeps successful analyses. It is optional.
type Recorder interface {
	SaveAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
}

type Request struct {
	Profile metrics.BodyProfile
	Image   *analyzer.Image
}

// Coach is the single entry point for one user interaction.
type Coach struct {
	requester analyzer.Requester
	configErr error
	model     string
	recorder  Recorder
	log       logrus.FieldLogger
	now       func() time.Time
}

type Option func(*Coach)

func WithRecorder(r Recorder) Option {
	return func(c *Coach) { c.recorder = r }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Coach) { c.log = l }
}

// WithModel names the model in recorded history.
func WithModel(model string) Option {
	return func(c *Coach) { c.model = model }
}

// New builds a Coach around requester. A nil requester means the credential
// was missing at startup: metrics still work and every analysis fails with a
// *ConfigurationError without reaching any collaborator.
func New(requester analyzer.Requester, opts ...Option) *Coach {
	c := &Coach{
		requester: requester,
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	if requester == nil {
		c.configErr = &ConfigurationError{Err: ErrMissingCredential}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready reports the configuration failure, if any.
func (c *Coach) Ready() error {
	return c.configErr
}

// Handle computes the metrics for req.Profile and, when a photo is attached,
// asks the collaborator once for a report. Invalid profiles are returned as
// errors; collaborator and configuration failures land in View.Failure.
func (c *Coach) Handle(ctx context.Context, req Request) (*models.View, error) {
	result, err := metrics.Compute(req.Profile)
	if err != nil {
		return nil, err
	}

	view := &models.View{Metrics: result}
	if req.Image == nil {
		return view, nil
	}

	report, err := c.analyze(ctx, *req.Image, result.RecommendedIntake)
	if err != nil {
		c.log.WithError(err).Warn("food analysis failed")
		view.Failure = failureFrom(err)
		return view, nil
	}
	view.Analysis = report

	if c.recorder != nil {
		rec := &models.AnalysisRecord{
			ID:                uuid.NewString(),
			CreatedAt:         c.now(),
			Profile:           req.Profile,
			RecommendedIntake: result.RecommendedIntake,
			MediaType:         req.Image.MediaType,
			Model:             c.model,
			Report:            report,
		}
		if err := c.recorder.SaveAnalysis(ctx, rec); err != nil {
			// History is best effort; the user still gets the report.
			c.log.WithError(err).WithField("analysis_id", rec.ID).Warn("failed to record analysis")
		}
	}

	return view, nil
}

func (c *Coach) analyze(ctx context.Context, img analyzer.Image, intake int) (string, error) {
	if c.configErr != nil {
		return "", c.configErr
	}

	start := c.now()
	report, err := c.requester.Analyze(ctx, img, intake)
	if err != nil {
		return "", &AnalysisRequestError{Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"media_type":         img.MediaType,
		"image_bytes":        len(img.Data),
		"recommended_intake": intake,
		"duration":           c.now().Sub(start),
	}).Info("food analysis completed")

	return report, nil
}
