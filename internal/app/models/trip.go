package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// PartyType is who is travelling.
type PartyType string

const (
	PartyJustMe  PartyType = "Just Me"
	PartyCouple  PartyType = "Couple"
	PartyFamily  PartyType = "Family"
	PartyFriends PartyType = "Friends"
)

func (p PartyType) Valid() bool {
	switch p {
	case PartyJustMe, PartyCouple, PartyFamily, PartyFriends:
		return true
	}
	return false
}

// Budgets and PartyTypes list the selectable options in display order.
var (
	Budgets    = []Budget{BudgetLow, BudgetMedium, BudgetHigh}
	PartyTypes = []PartyType{PartyJustMe, PartyCouple, PartyFamily, PartyFriends}
)

// TripRequest parameterizes one generation call. It is sent as-is: nothing
// here is validated before submission.
type TripRequest struct {
	Location string    `json:"location"`
	Days     int       `json:"days"`
	Budget   Budget    `json:"budget"`
	People   PartyType `json:"people"`
}

// TripPlan is the structured answer of the generative service.
// A nil slice means the key was missing (or null) in the response.
type TripPlan struct {
	Hotels    []Hotel   `json:"hotels"`
	Itinerary []DayPlan `json:"itinerary"`
}

type Hotel struct {
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Price          Text           `json:"price"`
	ImageURL       string         `json:"imageUrl"`
	GeoCoordinates GeoCoordinates `json:"geoCoordinates"`
	Rating         Text           `json:"rating"`
	Description    string         `json:"description"`
}

type DayPlan struct {
	Day             int        `json:"day"`
	BestTimeToVisit string     `json:"bestTimeToVisit,omitempty"`
	Plan            []Activity `json:"plan"`
}

type Activity struct {
	Place           string         `json:"place"`
	Details         string         `json:"details"`
	ImageURL        string         `json:"imageUrl"`
	GeoCoordinates  GeoCoordinates `json:"geoCoordinates"`
	TicketPricing   Text           `json:"ticketPricing"`
	TimeToTravel    Text           `json:"timeToTravel"`
	BestTimeToVisit string         `json:"bestTimeToVisit,omitempty"`
}

// fields indexes a JSON object by normalized key so that the spellings models
// tend to produce (hotelName, hotel_name, HotelName) all resolve.
type fields map[string]json.RawMessage

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func decodeFields(b []byte) (fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	f := make(fields, len(raw))
	for k, v := range raw {
		nk := normalizeKey(k)
		if _, dup := f[nk]; !dup {
			f[nk] = v
		}
	}
	return f, nil
}

// lookup returns the first present key.
func (f fields) lookup(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func (f fields) decode(dst any, keys ...string) error {
	raw, ok := f.lookup(keys...)
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %s: %w", keys[0], err)
	}
	return nil
}

// text decodes a scalar field into a plain string.
func (f fields) text(dst *string, keys ...string) error {
	var t Text
	if err := f.decode(&t, keys...); err != nil {
		return err
	}
	*dst = string(t)
	return nil
}

func (p *TripPlan) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	if err := f.decode(&p.Hotels, "hotels", "hoteloptions"); err != nil {
		return err
	}
	raw, ok := f.lookup("itinerary")
	if !ok {
		return nil
	}
	itinerary, err := decodeItinerary(raw)
	if err != nil {
		return fmt.Errorf("field itinerary: %w", err)
	}
	p.Itinerary = itinerary
	return nil
}

// decodeItinerary accepts the array form and the object form keyed by day
// ({"day1": {...}, "day2": {...}}).
func decodeItinerary(raw json.RawMessage) ([]DayPlan, error) {
	var days []DayPlan
	if err := json.Unmarshal(raw, &days); err == nil {
		return days, nil
	}
	var byKey map[string]DayPlan
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return dayNumber(keys[i]) < dayNumber(keys[j])
	})
	days = make([]DayPlan, 0, len(keys))
	for _, k := range keys {
		d := byKey[k]
		if d.Day == 0 {
			d.Day = dayNumber(k)
		}
		days = append(days, d)
	}
	return days, nil
}

// dayNumber extracts the first run of digits ("Day 3" -> 3); 0 when absent.
func dayNumber(s string) int {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	n, _ := strconv.Atoi(s[start:end])
	return n
}

func (h *Hotel) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	for _, step := range []error{
		f.text(&h.Name, "name", "hotelname"),
		f.text(&h.Address, "address", "hoteladdress"),
		f.decode(&h.Price, "price", "priceininr", "pricepernight"),
		f.text(&h.ImageURL, "imageurl", "hotelimageurl", "image"),
		f.decode(&h.GeoCoordinates, "geocoordinates", "coordinates", "geo"),
		f.decode(&h.Rating, "rating"),
		f.text(&h.Description, "description", "descriptions", "hoteldescription"),
	} {
		if step != nil {
			return step
		}
	}
	return nil
}

func (d *DayPlan) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	var day Text
	if err := f.decode(&day, "day"); err != nil {
		return err
	}
	d.Day = dayNumber(string(day))
	if err := f.text(&d.BestTimeToVisit, "besttimetovisit", "besttime"); err != nil {
		return err
	}
	return f.decode(&d.Plan, "plan", "activities", "places", "schedule")
}

func (a *Activity) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	for _, step := range []error{
		f.text(&a.Place, "place", "placename", "name"),
		f.text(&a.Details, "details", "placedetails", "description"),
		f.text(&a.ImageURL, "imageurl", "placeimageurl", "image"),
		f.decode(&a.GeoCoordinates, "geocoordinates", "coordinates", "geo"),
		f.decode(&a.TicketPricing, "ticketpricing", "ticketprice", "price"),
		f.decode(&a.TimeToTravel, "timetotravel", "timetravel", "traveltime"),
		f.text(&a.BestTimeToVisit, "besttimetovisit", "besttime"),
	} {
		if step != nil {
			return step
		}
	}
	return nil
}
