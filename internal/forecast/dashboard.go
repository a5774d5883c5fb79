package forecast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyLoaded is returned by Load after the first call.
	ErrAlreadyLoaded = errors.New("dashboard already loaded")
	// ErrClosed is returned by Load on a closed dashboard.
	ErrClosed = errors.New("dashboard closed")
)

// Request identifies what the dashboard fetches on load.
type Request struct {
	City string `json:"city"`
	Days int    `json:"days"`
}

// Result is the tagged outcome of the load. Err is nil for Ok.
type Result struct {
	Count int
	Err   error
}

// Ok reports whether the load succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// View is the read model the page and the JSON API render.
type View struct {
	Session   string          `json:"session"`
	State     State           `json:"state"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
	Stats     SummaryStats    `json:"stats"`
	Filter    Filter          `json:"filter"`
	Records   []DisplayRecord `json:"records"`
}

// Dashboard owns one session's forecast: it fetches once, then serves
// stats and filtered views over the stored sequence.
type Dashboard struct {
	id      string
	source  Source
	store   Store
	request Request
	logger  *zap.Logger

	mu     sync.Mutex
	state  State
	result *Result
	cancel context.CancelFunc
	closed bool
}

// NewDashboard creates a dashboard in the uninitialized state.
func NewDashboard(source Source, store Store, req Request, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Dashboard{
		id:      id,
		source:  source,
		store:   store,
		request: req,
		logger:  logger.With(zap.String("session", id)),
		state:   StateUninitialized,
	}
}

// ID returns the session identifier.
func (d *Dashboard) ID() string { return d.id }

// State returns the current lifecycle state.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Result returns the load outcome, or false while the load has not finished.
func (d *Dashboard) Result() (Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.result == nil {
		return Result{}, false
	}
	return *d.result, true
}

// Load fetches, transforms and stores the forecast. Only the first call does
// any work; it always leaves the dashboard populated, even when the fetch
// fails. A failed fetch is logged and keeps the previous (empty) sequence.
func (d *Dashboard) Load(ctx context.Context) Result {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Result{Err: ErrClosed}
	}
	if d.state != StateUninitialized {
		d.mu.Unlock()
		return Result{Err: ErrAlreadyLoaded}
	}
	ctx, cancel := context.WithCancel(ctx)
	d.state = StateLoading
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()

	records, res := d.fetch(ctx)

	// The sequence, state and result change together so a View never sees
	// one without the others.
	d.mu.Lock()
	if res.Ok() {
		d.store.Replace(records)
	}
	d.state = StatePopulated
	d.result = &res
	d.cancel = nil
	d.mu.Unlock()

	if res.Ok() {
		d.logger.Info("forecast loaded", zap.Int("records", res.Count))
	}
	return res
}

func (d *Dashboard) fetch(ctx context.Context) (records []DisplayRecord, res Result) {
	defer func() {
		if r := recover(); r != nil {
			records, res = nil, Result{Err: fmt.Errorf("forecast load panicked: %v", r)}
			d.logger.Error("failed to fetch forecast data", zap.Any("panic", r))
		}
	}()

	if d.source == nil {
		d.logger.Error("no forecast source configured")
		return nil, Result{Err: errors.New("no forecast source configured")}
	}

	d.logger.Debug("fetching forecast",
		zap.String("provider", d.source.Name()),
		zap.String("city", d.request.City),
		zap.Int("days", d.request.Days),
	)

	raw, err := d.source.FetchDaily(ctx, d.request.City, d.request.Days)
	if err != nil {
		d.logger.Error("failed to fetch forecast data",
			zap.String("provider", d.source.Name()),
			zap.Error(err),
		)
		return nil, Result{Err: err}
	}

	records = Transform(raw)
	return records, Result{Count: len(records)}
}

// Close cancels an in-flight load and prevents future ones.
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
	}
}

// Records returns the full, unfiltered display sequence.
func (d *Dashboard) Records() []DisplayRecord {
	return d.store.Records()
}

// Stats recomputes the summary over the full display sequence.
func (d *Dashboard) Stats() SummaryStats {
	return Summarize(d.store.Records())
}

// View builds the dashboard read model for the given filter. Stats always
// cover the full sequence; only Records is filtered. The state, error and
// records are read under one lock, so they always describe the same moment.
func (d *Dashboard) View(f Filter) View {
	d.mu.Lock()
	state := d.state
	var loadErr string
	if d.result != nil && d.result.Err != nil {
		loadErr = d.result.Err.Error()
	}
	records := d.store.Records()
	updatedAt := d.store.UpdatedAt()
	d.mu.Unlock()

	v := View{
		Session: d.id,
		State:   state,
		Error:   loadErr,
		Stats:   Summarize(records),
		Filter:  f,
		Records: f.Apply(records),
	}
	if !updatedAt.IsZero() {
		v.UpdatedAt = &updatedAt
	}
	return v
}
