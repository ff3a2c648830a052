package tripplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

var planKeys = map[string]bool{"hotels": true, "hoteloptions": true, "itinerary": true}

// ParsePlan decodes the generative service reply. It returns (nil, nil) for a
// JSON null and an empty plan for any JSON value that is not an object.
// Anything that is not JSON wraps models.ErrMalformedPlan.
func ParsePlan(text string) (*models.TripPlan, error) {
	body, ok := extractJSON(text)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrMalformedPlan, truncate(text, 120))
	}

	switch body[0] {
	case 'n':
		return nil, nil
	case '{':
		return decodeObject(body, true)
	default:
		return &models.TripPlan{}, nil
	}
}

func decodeObject(body []byte, unwrap bool) (*models.TripPlan, error) {
	if unwrap {
		if inner, ok := wrappedPlan(body); ok {
			return decodeObject(inner, false)
		}
	}
	var plan models.TripPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedPlan, err)
	}
	return &plan, nil
}

// wrappedPlan returns the single nested object of replies shaped like
// {"tripPlan": {...}} that carry no plan keys at the top level.
func wrappedPlan(body []byte) ([]byte, bool) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, false
	}
	var inner []byte
	for k, v := range top {
		if planKeys[strings.ToLower(strings.ReplaceAll(k, "_", ""))] {
			return nil, false
		}
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '{' {
			if inner != nil {
				return nil, false
			}
			inner = v
		}
	}
	return inner, inner != nil
}

// extractJSON returns the reply when it is a single JSON value. Surrounding
// whitespace is allowed; markdown fences or prose are not.
func extractJSON(text string) ([]byte, bool) {
	body := []byte(strings.TrimSpace(text))
	if len(body) == 0 || !json.Valid(body) {
		return nil, false
	}
	return body, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
