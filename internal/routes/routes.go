package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/app/handlers"
	"github.com/FACorreiaa/go-trip-planner/internal/app/middleware"
)

// Dependencies are the domain services the routes are served from.
type Dependencies struct {
	Sessions   *planner.Sessions
	Suggester  location.Suggester
	Planner    tripplan.Planner
	SessionTTL time.Duration
}

type AppHandlers struct {
	Planner *handlers.PlannerHandlers
	API     *handlers.APIHandlers
}

func NewAppHandlers(deps Dependencies, logger *zap.Logger) *AppHandlers {
	base := handlers.NewBaseHandler(logger)
	return &AppHandlers{
		Planner: handlers.NewPlannerHandlers(base, deps.Sessions),
		API:     handlers.NewAPIHandlers(logger, deps.Suggester, deps.Planner),
	}
}

// Setup registers every route on r.
func Setup(r *gin.Engine, deps Dependencies, logger *zap.Logger) {
	h := NewAppHandlers(deps, logger)

	r.GET("/healthz", handlers.Health)

	// Session bound form
	web := r.Group("/", middleware.SessionMiddleware(deps.SessionTTL))
	{
		web.GET("/", h.Planner.ShowPage)
		web.GET("/planner", h.Planner.State)
		web.GET("/planner/results", h.Planner.Results)
		web.POST("/planner/location", h.Planner.SetLocation)
		web.POST("/planner/suggestions/:index", h.Planner.SelectSuggestion)
		web.POST("/planner/fields", h.Planner.UpdateFields)
		web.POST("/planner/submit", h.Planner.Submit)
	}

	// Stateless JSON API
	api := r.Group("/api")
	{
		api.GET("/suggestions", h.API.Suggestions)
		api.POST("/plans", h.API.Plans)
	}
}
