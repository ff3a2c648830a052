package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/config"
)

// Phase of the most recent submission.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailed  Phase = "failed"
)

// State is a point in time copy of a form. Plan is shared with the controller
// and must not be modified.
type State struct {
	Location    string              `json:"location"`
	Suggestions []models.Suggestion `json:"suggestions"`
	Days        int                 `json:"days"`
	Budget      models.Budget       `json:"budget"`
	People      models.PartyType    `json:"people"`
	Loading     bool                `json:"loading"`
	Phase       Phase               `json:"phase"`
	Plan        *models.TripPlan    `json:"plan"`
	// LastIssued is the sequence number of the latest submission and
	// LastApplied the one whose outcome currently shows.
	LastIssued  uint64 `json:"last_issued"`
	LastApplied uint64 `json:"last_applied"`
}

// Request returns the generation request the form would submit.
func (s State) Request() models.TripRequest {
	return models.TripRequest{Location: s.Location, Days: s.Days, Budget: s.Budget, People: s.People}
}

type Option func(*Controller)

// WithResolution selects how overlapping submissions resolve:
// config.ResolutionLastResolved or config.ResolutionLatestIssued.
func WithResolution(policy string) Option {
	return func(c *Controller) { c.resolution = policy }
}

// WithTracker also registers every generation on wg, so a single group can
// cover many controllers.
func WithTracker(wg *sync.WaitGroup) Option {
	return func(c *Controller) { c.tracker = wg }
}

// Controller holds the form of one browser session. Network calls run outside
// the lock and their results are applied under it.
type Controller struct {
	suggester  location.Suggester
	planner    tripplan.Planner
	logger     *zap.Logger
	resolution string
	tracker    *sync.WaitGroup
	inflight   sync.WaitGroup

	mu          sync.Mutex
	location    string
	suggestions []models.Suggestion
	days        int
	budget      models.Budget
	people      models.PartyType
	plan        *models.TripPlan
	outcome     Phase
	pending     int
	issued      uint64
	applied     uint64
}

func NewController(suggester location.Suggester, planner tripplan.Planner, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		suggester:   suggester,
		planner:     planner,
		logger:      logger,
		resolution:  config.ResolutionLastResolved,
		suggestions: []models.Suggestion{},
		outcome:     PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLocation stores the typed text and refreshes the suggestions for it.
// When lookups overlap, the one that resolves last wins.
func (c *Controller) SetLocation(ctx context.Context, query string) []models.Suggestion {
	ctx, span := otel.Tracer("PlannerController").Start(ctx, "SetLocation")
	defer span.End()

	c.mu.Lock()
	c.location = query
	c.mu.Unlock()

	suggestions := c.suggester.Suggest(ctx, query)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	c.mu.Lock()
	c.suggestions = suggestions
	c.mu.Unlock()

	span.SetAttributes(attribute.Int("suggestions.count", len(suggestions)))
	return suggestions
}

// SelectSuggestion copies the chosen suggestion's display name into the
// location and clears the list.
func (c *Controller) SelectSuggestion(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.suggestions) {
		return fmt.Errorf("%w: index %d of %d", models.ErrSuggestionNotFound, index, len(c.suggestions))
	}
	c.location = c.suggestions[index].DisplayName
	c.suggestions = []models.Suggestion{}
	return nil
}

func (c *Controller) SetDays(days int) {
	c.mu.Lock()
	c.days = days
	c.mu.Unlock()
}

func (c *Controller) SetBudget(budget models.Budget) {
	c.mu.Lock()
	c.budget = budget
	c.mu.Unlock()
}

func (c *Controller) SetPeople(people models.PartyType) {
	c.mu.Lock()
	c.people = people
	c.mu.Unlock()
}

// Submit starts a generation for the current form values, whatever they are,
// and returns its sequence number. The generation outlives ctx's cancellation.
func (c *Controller) Submit(ctx context.Context) uint64 {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.pending++
	req := models.TripRequest{Location: c.location, Days: c.days, Budget: c.budget, People: c.people}
	c.mu.Unlock()

	c.inflight.Add(1)
	if c.tracker != nil {
		c.tracker.Add(1)
	}

	c.logger.Info("Trip plan submitted",
		zap.Uint64("seq", seq),
		zap.String("location", req.Location),
		zap.Int("days", req.Days),
	)

	go c.generate(context.WithoutCancel(ctx), seq, req)
	return seq
}

func (c *Controller) generate(ctx context.Context, seq uint64, req models.TripRequest) {
	defer c.inflight.Done()
	if c.tracker != nil {
		defer c.tracker.Done()
	}

	ctx, span := otel.Tracer("PlannerController").Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(attribute.Int64("seq", int64(seq)))

	var (
		plan *models.TripPlan
		err  error
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", models.ErrGenerationFailed, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Generation failed")
		}
		c.finish(seq, plan, err)
	}()

	plan, err = c.planner.Generate(ctx, req)
}

// finish releases the submission's share of the loading flag and applies its
// outcome according to the resolution policy.
func (c *Controller) finish(seq uint64, plan *models.TripPlan, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending--
	l := c.logger.With(zap.String("method", "finish"), zap.Uint64("seq", seq))

	if c.resolution == config.ResolutionLatestIssued && seq != c.issued {
		l.Info("Discarding stale trip plan response", zap.Uint64("latest", c.issued), zap.Error(err))
		return
	}

	c.applied = seq
	switch {
	case err == nil:
		c.plan = plan
		c.outcome = PhaseSuccess
	case errors.Is(err, models.ErrMalformedPlan):
		l.Error("Trip plan response could not be parsed", zap.Error(err))
		c.plan = nil
		c.outcome = PhaseFailed
	default:
		l.Error("Trip plan generation failed", zap.Error(err))
		c.outcome = PhaseFailed
	}
}

// Wait blocks until every submitted generation has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	phase := c.outcome
	if c.pending > 0 {
		phase = PhaseLoading
	}
	return State{
		Location:    c.location,
		Suggestions: append([]models.Suggestion{}, c.suggestions...),
		Days:        c.days,
		Budget:      c.budget,
		People:      c.people,
		Loading:     c.pending > 0,
		Phase:       phase,
		Plan:        c.plan,
		LastIssued:  c.issued,
		LastApplied: c.applied,
	}
}
