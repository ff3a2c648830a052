package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/render"
	"github.com/FACorreiaa/go-trip-planner/internal/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/app/views"
)

const pageTitle = "Trip Planner"

// PlannerHandlers serve the session bound form.
type PlannerHandlers struct {
	*BaseHandler
	sessions *planner.Sessions
}

func NewPlannerHandlers(base *BaseHandler, sessions *planner.Sessions) *PlannerHandlers {
	return &PlannerHandlers{BaseHandler: base, sessions: sessions}
}

// StateResponse is the JSON form of a planner session.
type StateResponse struct {
	planner.State
	Summary string         `json:"summary"`
	Result  *render.Result `json:"result"`
	Seq     uint64         `json:"seq,omitempty"`
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (h *PlannerHandlers) controller(c *gin.Context) *planner.Controller {
	return h.sessions.Get(middleware.GetSessionID(c))
}

// respond writes state as JSON, as the given fragment for htmx requests, or as
// the full page.
func (h *PlannerHandlers) respond(c *gin.Context, status int, state planner.State, seq uint64, fragment func(views.PlannerView) templ.Component) {
	if wantsJSON(c) {
		c.JSON(status, StateResponse{
			State:   state,
			Summary: render.Summarize(state.Request()),
			Result:  render.RenderOutcome(state.Plan, state.Phase == planner.PhaseFailed),
			Seq:     seq,
		})
		return
	}
	vm := views.NewPlannerView(state)
	if isHTMX(c) {
		h.Render(c, status, fragment(vm))
		return
	}
	h.RenderPage(c, status, pageTitle, views.Planner(vm))
}

// ShowPage renders the planner page for the current session.
func (h *PlannerHandlers) ShowPage(c *gin.Context) {
	state := h.controller(c).Snapshot()
	h.RenderPage(c, http.StatusOK, pageTitle, views.Planner(views.NewPlannerView(state)))
}

// State returns the session's form, suggestions and plan.
func (h *PlannerHandlers) State(c *gin.Context) {
	h.respond(c, http.StatusOK, h.controller(c).Snapshot(), 0, views.Planner)
}

// Results returns the plan section; htmx polls it while loading.
func (h *PlannerHandlers) Results(c *gin.Context) {
	h.respond(c, http.StatusOK, h.controller(c).Snapshot(), 0, views.Results)
}

// SetLocation stores the typed location and looks up suggestions for it.
func (h *PlannerHandlers) SetLocation(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.SetLocation(c.Request.Context(), c.PostForm("location"))
	h.respond(c, http.StatusOK, ctrl.Snapshot(), 0, views.Suggestions)
}

// SelectSuggestion copies a suggestion into the location field.
func (h *PlannerHandlers) SelectSuggestion(c *gin.Context) {
	l := h.Logger.With(zap.String("method", "SelectSuggestion"))
	ctrl := h.controller(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		l.Warn("Invalid suggestion index", zap.String("index", c.Param("index")))
		h.respondError(c, ctrl, fmt.Errorf("%w: suggestion index must be a number", models.ErrBadRequest))
		return
	}
	if err := ctrl.SelectSuggestion(index); err != nil {
		l.Warn("Suggestion not selectable", zap.Error(err))
		h.respondError(c, ctrl, err)
		return
	}
	h.respond(c, http.StatusOK, ctrl.Snapshot(), 0, views.Planner)
}

// UpdateFields assigns days, budget and people when present in the form.
func (h *PlannerHandlers) UpdateFields(c *gin.Context) {
	ctrl := h.controller(c)
	if err := applyFields(c, ctrl); err != nil {
		h.respondError(c, ctrl, err)
		return
	}
	if isHTMX(c) && !wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	h.respond(c, http.StatusOK, ctrl.Snapshot(), 0, views.Planner)
}

// Submit starts generating a plan for the session's form. The plan arrives
// asynchronously; clients poll State or Results.
func (h *PlannerHandlers) Submit(c *gin.Context) {
	ctrl := h.controller(c)
	if err := applyFields(c, ctrl); err != nil {
		h.respondError(c, ctrl, err)
		return
	}
	seq := ctrl.Submit(c.Request.Context())
	h.Logger.Debug("Planner submission accepted",
		zap.String("session", middleware.GetSessionID(c)),
		zap.Uint64("seq", seq),
	)
	h.respond(c, http.StatusAccepted, ctrl.Snapshot(), seq, views.Results)
}

func (h *PlannerHandlers) respondError(c *gin.Context, ctrl *planner.Controller, err error) {
	code, message := statusFor(err)
	if wantsJSON(c) {
		RespondError(c, code, message)
		return
	}
	h.Render(c, code, views.Planner(views.NewPlannerView(ctrl.Snapshot())))
	c.Abort()
}

// applyFields copies the optional days, budget and people form values as-is.
// An empty days value clears the field.
func applyFields(c *gin.Context, ctrl *planner.Controller) error {
	if raw, ok := c.GetPostForm("days"); ok {
		raw = strings.TrimSpace(raw)
		days := 0
		if raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%w: days must be a whole number", models.ErrBadRequest)
			}
			days = n
		}
		ctrl.SetDays(days)
	}
	if budget, ok := c.GetPostForm("budget"); ok {
		ctrl.SetBudget(models.Budget(budget))
	}
	if people, ok := c.GetPostForm("people"); ok {
		ctrl.SetPeople(models.PartyType(people))
	}
	return nil
}
