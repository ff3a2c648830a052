package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/render"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

// APIHandlers expose the suggestion lookup and plan generation without
// session state.
type APIHandlers struct {
	logger    *zap.Logger
	suggester location.Suggester
	planner   tripplan.Planner
}

func NewAPIHandlers(logger *zap.Logger, suggester location.Suggester, planner tripplan.Planner) *APIHandlers {
	return &APIHandlers{logger: logger, suggester: suggester, planner: planner}
}

// PlanResponse is the data of a successful generation.
type PlanResponse struct {
	Request models.TripRequest `json:"request"`
	Summary string             `json:"summary"`
	Plan    *models.TripPlan   `json:"plan"`
	Result  *render.Result     `json:"result"`
}

// Suggestions handles GET /api/suggestions?q=.
func (h *APIHandlers) Suggestions(c *gin.Context) {
	suggestions := h.suggester.Suggest(c.Request.Context(), c.Query("q"))
	RespondSuccess(c, http.StatusOK, suggestions, fmt.Sprintf("%d suggestions", len(suggestions)))
}

// Plans handles POST /api/plans and waits for the generated plan.
func (h *APIHandlers) Plans(c *gin.Context) {
	l := h.logger.With(zap.String("method", "Plans"))

	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn("Invalid trip request body", zap.Error(err))
		HandleServiceError(c, fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}

	plan, err := h.planner.Generate(c.Request.Context(), req)
	if err != nil {
		l.Error("Trip plan generation failed", zap.Error(err))
		HandleServiceError(c, err)
		return
	}

	RespondSuccess(c, http.StatusOK, PlanResponse{
		Request: req,
		Summary: render.Summarize(req),
		Plan:    plan,
		Result:  render.RenderPlan(plan),
	}, "Trip plan generated")
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
