package overlay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/incident-heatmap-go/internal/metrics"
	"github.com/jengzang/incident-heatmap-go/internal/models"
	"github.com/jengzang/incident-heatmap-go/internal/service"
)

// DefaultRefreshTimeout bounds a single refresh once it is detached from the caller
const DefaultRefreshTimeout = 30 * time.Second

// ErrSuperseded is returned by Refresh when a newer refresh started before this one finished
var ErrSuperseded = errors.New("overlay refresh superseded by a newer request")

// MapRenderer draws one filled polygon per cell of the given state.
// Render is called with the controller lock held and must not call back into the Controller.
type MapRenderer interface {
	Render(ctx context.Context, state State) error
}

// Builder runs fetch-and-bucketize for a request
type Builder interface {
	Validate(req service.HeatmapRequest) error
	Build(ctx context.Context, req service.HeatmapRequest) (*models.HeatmapResponse, error)
}

// Controller holds the only mutable reference to the overlay state
type Controller struct {
	builder  Builder
	renderer MapRenderer
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
	timeout  time.Duration

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewController creates a controller in the idle state
func NewController(builder Builder, renderer MapRenderer, m *metrics.Metrics, logger *zap.Logger) *Controller {
	return &Controller{
		builder:  builder,
		renderer: renderer,
		metrics:  m,
		logger:   logger.Named("overlay"),
		now:      time.Now,
		timeout:  DefaultRefreshTimeout,
		state:    State{Status: StatusIdle},
	}
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh fetches and bucketizes req and, if no newer refresh has started in
// the meantime, replaces the visible state wholesale.
//
// Validation errors are returned without touching the state. Fetch failures
// keep the previous cells visible, set the error status and are returned.
// A result that lost the race is dropped and ErrSuperseded is returned with
// the current state.
//
// The overlay is shared, so the fetch is not cancelled when ctx is; it runs
// until it completes or the refresh timeout expires.
func (c *Controller) Refresh(ctx context.Context, req service.HeatmapRequest) (State, error) {
	if err := c.builder.Validate(req); err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	c.seq++
	gen := c.seq
	c.state = Begin(c.state, gen, req.Bounds, req.Grid, c.now())
	c.mu.Unlock()

	buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()
	resp, buildErr := c.build(buildCtx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.seq {
		c.metrics.OverlaySuperseded.Inc()
		c.logger.Debug("dropping superseded overlay result", zap.Uint64("generation", gen), zap.Uint64("latest", c.seq))
		return c.state, ErrSuperseded
	}

	c.state = Apply(c.state, gen, resp, buildErr, c.now())
	if buildErr != nil {
		c.logger.Warn("overlay refresh failed", zap.Uint64("generation", gen), zap.Error(buildErr))
	} else {
		c.metrics.OverlayGeneration.Set(float64(gen))
	}

	if c.renderer != nil {
		if err := c.renderer.Render(buildCtx, c.state); err != nil {
			c.logger.Error("overlay render failed", zap.Uint64("generation", gen), zap.Error(err))
		}
	}

	return c.state, buildErr
}

// build runs the builder and turns a panic into an error so the state never
// stays loading
func (c *Controller) build(ctx context.Context, req service.HeatmapRequest) (resp *models.HeatmapResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("overlay build panicked", zap.Any("panic", r))
			resp, err = nil, fmt.Errorf("overlay build panicked: %v", r)
		}
	}()
	return c.builder.Build(ctx, req)
}
