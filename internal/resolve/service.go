// Package resolve turns user supplied timestamp strings into start boundaries
// for the CLI and HTTP surfaces, one value at a time or in batches.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/flextime/timestamp"
)

const (
	// MaxBatchSize bounds the number of values in one batch.
	MaxBatchSize = 100
	// MaxValueLength bounds a single input value in characters.
	MaxValueLength = 64

	defaultConcurrency = 8
)

var (
	// ErrInvalidRequest indicates a batch or range request failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRange indicates the end of a range precedes its start.
	ErrInvalidRange = errors.New("until must not be earlier than since")
)

// Recorder receives one observation per resolved value.
type Recorder interface {
	ObserveResolution(granularity, outcome string)
}

// ServiceConfig tunes the resolver.
type ServiceConfig struct {
	MaxConcurrency int
}

// BatchRequest is the payload accepted by ResolveBatch.
type BatchRequest struct {
	Values []string `json:"values" validate:"required,min=1,max=100,dive,max=64"`
}

// Result is the outcome for one value of a batch.
type Result struct {
	Input string
	Start timestamp.Start
	Err   error
}

// Range is a validated [Since, Until] pair. Until is optional.
type Range struct {
	Since time.Time  `json:"since"`
	Until *time.Time `json:"until,omitempty" validate:"omitempty,gtefield=Since"`
}

// Service resolves timestamp strings and records outcomes.
type Service struct {
	logger      *slog.Logger
	metrics     Recorder
	validate    *validator.Validate
	concurrency int
}

// NewService constructs a resolver. metrics may be nil.
func NewService(logger *slog.Logger, metrics Recorder, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		logger:      logger,
		metrics:     metrics,
		validate:    validator.New(),
		concurrency: concurrency,
	}
}

// Resolve parses value into its start boundary.
func (s *Service) Resolve(ctx context.Context, value string) (timestamp.Start, error) {
	start, err := timestamp.ParseStart(value)
	s.observe(start, err)
	if err != nil {
		s.logger.DebugContext(ctx, "resolve timestamp", slog.String("input", value), slog.Any("error", err))
		return timestamp.Start{}, err
	}
	s.logger.DebugContext(ctx, "resolve timestamp",
		slog.String("input", value),
		slog.String("granularity", start.Granularity().String()),
		slog.String("start", start.String()))
	return start, nil
}

// ResolveBatch validates req against the batch limits and resolves its
// values with ResolveAll. The returned error is non-nil only for invalid
// requests or a cancelled context.
func (s *Service) ResolveBatch(ctx context.Context, req BatchRequest) ([]Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, describeValidation(err)
	}
	return s.ResolveAll(ctx, req.Values)
}

// ResolveAll resolves every value concurrently without applying batch
// limits. Results keep the input order; a failing value is reported in its
// Result and does not stop the rest.
func (s *Service) ResolveAll(ctx context.Context, values []string) ([]Result, error) {
	results := make([]Result, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, value := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start, err := s.Resolve(ctx, value)
			results[i] = Result{Input: value, Start: start, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// NewRange validates that until, when set, is not before since.
func (s *Service) NewRange(since timestamp.Start, until *timestamp.Start) (Range, error) {
	r := Range{Since: since.Time()}
	if until != nil {
		t := until.Time()
		r.Until = &t
	}
	if err := s.validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return Range{}, ErrInvalidRange
		}
		return Range{}, err
	}
	return r, nil
}

func (s *Service) observe(start timestamp.Start, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.ObserveResolution("", timestamp.Kind(err).String())
		return
	}
	s.metrics.ObserveResolution(start.Granularity().String(), "ok")
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msg := fmt.Sprintf("%s failed %s", fieldErr.Namespace(), fieldErr.Tag())
		if fieldErr.Param() != "" {
			msg += "=" + fieldErr.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}
