package tripplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/debugger"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/llm"
)

// Planner produces a trip plan for a request.
type Planner interface {
	Generate(ctx context.Context, req models.TripRequest) (*models.TripPlan, error)
}

type Generator struct {
	model  llm.ChatModel
	logger *zap.Logger
}

func NewGenerator(model llm.ChatModel, logger *zap.Logger) *Generator {
	return &Generator{model: model, logger: logger}
}

// Generate sends one request to the generative service. Service failures wrap
// models.ErrGenerationFailed and unparseable replies wrap
// models.ErrMalformedPlan. A nil plan with a nil error means the service
// answered with JSON null.
func (g *Generator) Generate(ctx context.Context, req models.TripRequest) (*models.TripPlan, error) {
	ctx, span := otel.Tracer("TripPlanGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("trip.location", req.Location),
		attribute.Int("trip.days", req.Days),
		attribute.String("trip.budget", string(req.Budget)),
		attribute.String("trip.people", string(req.People)),
		attribute.String("llm.model", g.model.Model()),
	))
	defer span.End()

	l := g.logger.With(zap.String("method", "Generate"), zap.String("location", req.Location))
	m := metrics.Get()
	start := time.Now()

	m.GenerationsInFlight.Add(ctx, 1)
	text, err := g.model.SendMessage(ctx, History(req), TriggerMessage, PlanConfig)
	m.GenerationsInFlight.Add(ctx, -1)

	outcome := "success"
	defer func() {
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		m.GenerationsTotal.Add(ctx, 1, attrs)
		m.GenerationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}()

	if err != nil {
		outcome = "service_error"
		l.Error("Generative service call failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generative service call failed")
		return nil, fmt.Errorf("%w: %w", models.ErrGenerationFailed, err)
	}

	debugger.LogPayload(l, "Generative service reply", text)
	plan, err := ParsePlan(text)
	if err != nil {
		outcome = "malformed"
		l.Error("Failed to parse trip plan", zap.Error(err), zap.Int("response.length", len(text)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Malformed trip plan")
		if !errors.Is(err, models.ErrMalformedPlan) {
			err = fmt.Errorf("%w: %w", models.ErrMalformedPlan, err)
		}
		return nil, err
	}

	if plan != nil {
		span.SetAttributes(
			attribute.Int("plan.hotels", len(plan.Hotels)),
			attribute.Int("plan.days", len(plan.Itinerary)),
		)
	}
	l.Info("Trip plan generated", zap.Duration("elapsed", time.Since(start)))
	span.SetStatus(codes.Ok, "Trip plan generated")
	return plan, nil
}
