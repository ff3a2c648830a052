package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/app/observability/metrics"
)

// MaxSkippedQueryLength is the longest query, in characters, that never
// reaches the geocoder.
const MaxSkippedQueryLength = 2

// Suggester returns destination suggestions for free text.
type Suggester interface {
	Suggest(ctx context.Context, query string) []models.Suggestion
}

// Client queries a Nominatim compatible search endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, userAgent string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger:     logger,
	}
}

// Suggest looks up query and returns the matches in service order. Short
// queries return an empty list without a network call. Failures are logged and
// also yield an empty list.
func (c *Client) Suggest(ctx context.Context, query string) []models.Suggestion {
	length := utf8.RuneCountInString(query)
	if length <= MaxSkippedQueryLength {
		return []models.Suggestion{}
	}

	ctx, span := otel.Tracer("LocationClient").Start(ctx, "Suggest")
	defer span.End()
	span.SetAttributes(attribute.Int("query.length", length))

	l := c.logger.With(zap.String("method", "Suggest"), zap.String("query", query))
	m := metrics.Get()
	m.SuggestionLookupsTotal.Add(ctx, 1)

	suggestions, err := c.search(ctx, query)
	if err != nil {
		l.Error("Failed to fetch location suggestions", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Suggestion lookup failed")
		m.SuggestionFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", classify(err))))
		return []models.Suggestion{}
	}

	l.Debug("Fetched location suggestions", zap.Int("count", len(suggestions)))
	span.SetAttributes(attribute.Int("suggestions.count", len(suggestions)))
	span.SetStatus(codes.Ok, "Suggestions fetched")
	return suggestions
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("geocoder returned status %d", e.code) }

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "failed to decode geocoder response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func (c *Client) search(ctx context.Context, query string) ([]models.Suggestion, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode}
	}

	suggestions := []models.Suggestion{}
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, &decodeError{err: err}
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	return suggestions, nil
}

func classify(err error) string {
	switch err.(type) {
	case *statusError:
		return "status"
	case *decodeError:
		return "decode"
	default:
		return "transport"
	}
}
