package resolvehttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/flextime/internal/platform/httpx"
	"github.com/odyssey-erp/flextime/internal/resolve"
	"github.com/odyssey-erp/flextime/timestamp"
)

// Service defines the resolver contract used by the handlers.
type Service interface {
	Resolve(ctx context.Context, value string) (timestamp.Start, error)
	ResolveBatch(ctx context.Context, req resolve.BatchRequest) ([]resolve.Result, error)
	NewRange(since timestamp.Start, until *timestamp.Start) (resolve.Range, error)
}

// Handler serves the timestamp resolution endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	newID   func() string
}

// NewHandler builds a handler around service.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:  logger,
		service: service,
		newID:   uuid.NewString,
	}
}

type startResponse struct {
	Input       string    `json:"input"`
	Granularity string    `json:"granularity"`
	Start       time.Time `json:"start"`
}

type batchItem struct {
	Input       string     `json:"input"`
	Granularity string     `json:"granularity,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	Error       string     `json:"error,omitempty"`
	ErrorKind   string     `json:"error_kind,omitempty"`
}

type batchResponse struct {
	BatchID string      `json:"batch_id"`
	Results []batchItem `json:"results"`
}

type rangeResponse struct {
	Since time.Time  `json:"since"`
	Until *time.Time `json:"until,omitempty"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	value, ok := r.URL.Query()["value"]
	if !ok || len(value) == 0 {
		httpx.RespondError(w, fmt.Errorf("%w: value is required", httpx.ErrValidation))
		return
	}
	start, err := h.service.Resolve(r.Context(), value[0])
	if err != nil {
		h.respondResolveError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, startResponse{
		Input:       value[0],
		Granularity: start.Granularity().String(),
		Start:       start.Time(),
	})
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req resolve.BatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	results, err := h.service.ResolveBatch(r.Context(), req)
	if err != nil {
		h.respondResolveError(w, r, err)
		return
	}
	resp := batchResponse{BatchID: h.newID(), Results: make([]batchItem, len(results))}
	for i, res := range results {
		item := batchItem{Input: res.Input}
		if res.Err != nil {
			item.Error = res.Err.Error()
			item.ErrorKind = timestamp.Kind(res.Err).String()
		} else {
			t := res.Start.Time()
			item.Start = &t
			item.Granularity = res.Start.Granularity().String()
		}
		resp.Results[i] = item
	}
	h.logger.InfoContext(r.Context(), "resolved batch", slog.String("batch_id", resp.BatchID), slog.Int("size", len(results)))
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sinceRaw := query.Get("since")
	if sinceRaw == "" {
		httpx.RespondError(w, fmt.Errorf("%w: since is required", httpx.ErrValidation))
		return
	}
	since, err := h.service.Resolve(r.Context(), sinceRaw)
	if err != nil {
		h.respondResolveError(w, r, fmt.Errorf("since: %w", err))
		return
	}
	var until *timestamp.Start
	if untilRaw := query.Get("until"); untilRaw != "" {
		u, err := h.service.Resolve(r.Context(), untilRaw)
		if err != nil {
			h.respondResolveError(w, r, fmt.Errorf("until: %w", err))
			return
		}
		until = &u
	}
	rng, err := h.service.NewRange(since, until)
	if err != nil {
		h.respondResolveError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rangeResponse{Since: rng.Since, Until: rng.Until})
}

func (h *Handler) respondResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, resolve.ErrInvalidRequest), errors.Is(err, resolve.ErrInvalidRange):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.WarnContext(r.Context(), "resolve aborted", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Request Aborted", "")
	default:
		if timestamp.Kind(err) == timestamp.KindNone {
			h.logger.ErrorContext(r.Context(), "resolve timestamp", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
	}
}
