package widget

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"sunlight-forecast/internal/domain"
	"sunlight-forecast/internal/platform/obs"
	"sunlight-forecast/internal/render"
	"sunlight-forecast/internal/services"
)

// State of the submission lifecycle.
type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Success State = "success"
	Failure State = "failure"
)

// Fetcher produces the daily series for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (domain.ForecastSeries, error)
}

// Regions is a point-in-time copy of everything the page shows.
type Regions struct {
	State   State
	City    string
	Loading bool
	Error   string
	Cards   []render.Card
	Trend   *render.ChartHandle
}

// Controller owns one widget: its display regions, its drawing surface and
// the single retained trend chart.
//
// Overlapping submissions are not serialized; their fetches run side by side
// and the last write wins. Surface work (clearing at the start of a
// submission, rendering its result) holds drawMu, so one submission's cards
// and trend are never interleaved with another's.
type Controller struct {
	fetcher Fetcher
	dates   services.DateFormatter
	surface *render.Surface

	drawMu sync.Mutex

	mu      sync.Mutex
	state   State
	city    string
	loading bool
	errText string
	cards   []render.Card
	trend   *render.ChartHandle
}

func NewController(fetcher Fetcher, dates services.DateFormatter) (*Controller, error) {
	if fetcher == nil {
		return nil, errors.New("widget controller: fetcher is nil")
	}

	return &Controller{
		fetcher: fetcher,
		dates:   dates,
		surface: render.NewSurface(),
		state:   Idle,
	}, nil
}

// Submit runs one form submission for city. A blank city is a no-op.
// Failures end up in the error region; the returned error is only for
// callers that want to log or inspect it.
func (c *Controller) Submit(ctx context.Context, city string) (err error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}

	defer obs.Time(ctx, "widget.Submit")(&err)

	c.begin(city)
	defer c.finish()

	if err := c.run(ctx, city); err != nil {
		log.Printf("req_id=%s submission failed city=%q err=%v", obs.RequestID(ctx), city, err)
		c.fail(err)
		return err
	}

	c.setState(Success)
	return nil
}

func (c *Controller) run(ctx context.Context, city string) error {
	series, err := c.fetcher.Fetch(ctx, city)
	if err != nil {
		return err
	}

	labels := c.dates.Labels(series.Dates())

	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	cards, err := render.RenderCards(c.surface, series, labels)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.cards = cards
	c.mu.Unlock()

	return c.replaceTrend(series, labels)
}

func (c *Controller) replaceTrend(series domain.ForecastSeries, labels []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, err := render.RenderTrend(c.surface, series, labels, c.trend)
	// the previous chart is gone either way
	c.trend = h
	return err
}

// begin enters Loading: error cleared, cards cleared, trend disposed.
func (c *Controller) begin(city string) {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Loading
	c.city = city
	c.loading = true
	c.errText = ""
	c.cards = nil
	c.surface.ClearCards()
	c.surface.Dispose(c.trend)
	c.trend = nil
}

// Close disposes every chart of the widget. Used when its session is evicted.
func (c *Controller) Close() {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cards = nil
	c.surface.ClearCards()
	c.surface.Dispose(c.trend)
	c.trend = nil
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Failure
	c.errText = domain.UserMessage(err)
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Regions {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Regions{
		State:   c.state,
		City:    c.city,
		Loading: c.loading,
		Error:   c.errText,
		Cards:   append([]render.Card(nil), c.cards...),
		Trend:   c.trend,
	}
}

// Chart returns a live chart on this widget's surface by id.
func (c *Controller) Chart(id string) (*render.ChartHandle, bool) {
	return c.surface.Lookup(id)
}

func (c *Controller) Surface() *render.Surface { return c.surface }

func (c *Controller) DateFormatter() services.DateFormatter { return c.dates }
