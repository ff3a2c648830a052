package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

const (
	HotelsPlaceholder    = "No hotel details available."
	ItineraryPlaceholder = "No itinerary details available."
)

// hotelNamespace scopes the name based hotel keys.
var hotelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("trip-planner/hotel"))

type HotelCard struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Coordinates string `json:"coordinates,omitempty"`
}

// HotelsSection is either a placeholder or a list of cards, never both.
type HotelsSection struct {
	Placeholder string      `json:"placeholder,omitempty"`
	Cards       []HotelCard `json:"cards"`
}

type ActivityRow struct {
	Key             string `json:"key"`
	Place           string `json:"place"`
	Details         string `json:"details"`
	TicketPricing   string `json:"ticketPricing"`
	TimeToTravel    string `json:"timeToTravel"`
	BestTimeToVisit string `json:"bestTimeToVisit,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Coordinates     string `json:"coordinates,omitempty"`
}

type DaySection struct {
	Key             string        `json:"key"`
	Title           string        `json:"title"`
	BestTimeToVisit string        `json:"bestTimeToVisit,omitempty"`
	Activities      []ActivityRow `json:"activities"`
}

type ItinerarySection struct {
	Placeholder string       `json:"placeholder,omitempty"`
	Days        []DaySection `json:"days"`
}

// Result is the rendered plan. A nil Result means there is nothing to show.
type Result struct {
	Hotels    HotelsSection    `json:"hotels"`
	Itinerary ItinerarySection `json:"itinerary"`
}

// RenderPlan returns nil when plan is absent.
func RenderPlan(plan *models.TripPlan) *Result {
	if plan == nil {
		return nil
	}
	return &Result{
		Hotels:    RenderHotels(plan.Hotels),
		Itinerary: RenderItinerary(plan.Itinerary),
	}
}

// RenderOutcome renders a generation outcome. A failed generation that left no
// plan shows both placeholders; otherwise it is RenderPlan.
func RenderOutcome(plan *models.TripPlan, failed bool) *Result {
	if plan == nil && failed {
		return RenderPlan(&models.TripPlan{})
	}
	return RenderPlan(plan)
}

// RenderHotels produces one card per hotel in order. A nil list yields the
// placeholder, an empty one yields no cards.
func RenderHotels(hotels []models.Hotel) HotelsSection {
	if hotels == nil {
		return HotelsSection{Placeholder: HotelsPlaceholder}
	}
	keys := newKeySet()
	cards := make([]HotelCard, 0, len(hotels))
	for _, h := range hotels {
		id := uuid.NewSHA1(hotelNamespace, []byte(h.Name+"\x00"+h.Address))
		cards = append(cards, HotelCard{
			Key:         keys.unique("hotel-" + id.String()),
			Name:        h.Name,
			Address:     h.Address,
			Price:       h.Price.String(),
			Rating:      h.Rating.String(),
			Description: h.Description,
			ImageURL:    h.ImageURL,
			Coordinates: h.GeoCoordinates.String(),
		})
	}
	return HotelsSection{Cards: cards}
}

// RenderItinerary produces one section per day in order, each with one row
// per activity. A nil list yields the placeholder.
func RenderItinerary(itinerary []models.DayPlan) ItinerarySection {
	if itinerary == nil {
		return ItinerarySection{Placeholder: ItineraryPlaceholder}
	}
	dayKeys := newKeySet()
	days := make([]DaySection, 0, len(itinerary))
	for _, d := range itinerary {
		dayKey := dayKeys.unique("day-" + strconv.Itoa(d.Day))
		activityKeys := newKeySet()
		rows := make([]ActivityRow, 0, len(d.Plan))
		for _, a := range d.Plan {
			rows = append(rows, ActivityRow{
				Key:             activityKeys.unique(dayKey + "-" + slug(a.Place)),
				Place:           a.Place,
				Details:         a.Details,
				TicketPricing:   a.TicketPricing.String(),
				TimeToTravel:    a.TimeToTravel.String(),
				BestTimeToVisit: a.BestTimeToVisit,
				ImageURL:        a.ImageURL,
				Coordinates:     a.GeoCoordinates.String(),
			})
		}
		days = append(days, DaySection{
			Key:             dayKey,
			Title:           fmt.Sprintf("Day %d", d.Day),
			BestTimeToVisit: d.BestTimeToVisit,
			Activities:      rows,
		})
	}
	return ItinerarySection{Days: days}
}

// keySet hands out keys, suffixing repeats with -2, -3 and so on.
type keySet map[string]int

func newKeySet() keySet { return keySet{} }

func (k keySet) unique(key string) string {
	k[key]++
	if n := k[key]; n > 1 {
		return fmt.Sprintf("%s-%d", key, n)
	}
	return key
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "place"
	}
	return out
}

// Summarize describes a request for headings, e.g.
// "3 days in Lisbon · Medium budget · Couple". Empty parts are left out.
func Summarize(req models.TripRequest) string {
	var parts []string

	switch {
	case req.Days == 1 && req.Location != "":
		parts = append(parts, "1 day in "+req.Location)
	case req.Location != "":
		parts = append(parts, fmt.Sprintf("%d days in %s", req.Days, req.Location))
	case req.Days != 0:
		parts = append(parts, fmt.Sprintf("%d days", req.Days))
	}
	if req.Budget != "" {
		parts = append(parts, Label(string(req.Budget))+" budget")
	}
	if req.People != "" {
		parts = append(parts, string(req.People))
	}
	return strings.Join(parts, " · ")
}

// Label returns the display form of an option value ("medium" -> "Medium").
func Label(value string) string {
	// a Caser keeps state, so one per call
	return cases.Title(language.English).String(value)
}
