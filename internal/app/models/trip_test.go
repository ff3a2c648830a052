package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripPlan_UnmarshalCanonicalKeys(t *testing.T) {
	raw := `{
		"hotels": [
			{"name": "Casa Azul", "address": "Rua 1", "price": "4500 INR", "imageUrl": "https://img/1.jpg",
			 "geoCoordinates": {"latitude": 38.71, "longitude": -9.14}, "rating": 4.5, "description": "Cozy"}
		],
		"itinerary": [
			{"day": 1, "plan": [
				{"place": "Belem Tower", "details": "Fortress", "ticketPricing": "600 INR", "timeToTravel": "2 hours"}
			]}
		]
	}`

	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))

	require.Len(t, plan.Hotels, 1)
	hotel := plan.Hotels[0]
	assert.Equal(t, "Casa Azul", hotel.Name)
	assert.Equal(t, Text("4500 INR"), hotel.Price)
	assert.Equal(t, Text("4.5"), hotel.Rating)
	assert.InDelta(t, 38.71, hotel.GeoCoordinates.Latitude, 1e-9)
	assert.InDelta(t, -9.14, hotel.GeoCoordinates.Longitude, 1e-9)

	require.Len(t, plan.Itinerary, 1)
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	require.Len(t, plan.Itinerary[0].Plan, 1)
	assert.Equal(t, "Belem Tower", plan.Itinerary[0].Plan[0].Place)
	assert.Equal(t, Text("2 hours"), plan.Itinerary[0].Plan[0].TimeToTravel)
}

func TestTripPlan_UnmarshalAliasKeys(t *testing.T) {
	raw := `{
		"hotelOptions": [{"hotelName": "Taj", "hotel_address": "MG Road", "priceInINR": 8000,
			"hotelImageUrl": "https://img/taj.jpg", "geo_coordinates": "12.97, 77.59", "rating": "4.8", "descriptions": "Luxury"}],
		"itinerary": [{"day": "Day 2", "activities": [{"placeName": "Lalbagh", "placeDetails": "Gardens",
			"ticket_pricing": 30, "time_to_travel": "30 min", "bestTimeToVisit": "Morning"}]}]
	}`

	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))

	require.Len(t, plan.Hotels, 1)
	assert.Equal(t, "Taj", plan.Hotels[0].Name)
	assert.Equal(t, "MG Road", plan.Hotels[0].Address)
	assert.Equal(t, Text("8000"), plan.Hotels[0].Price)
	assert.Equal(t, "Luxury", plan.Hotels[0].Description)
	assert.Equal(t, "12.970000, 77.590000", plan.Hotels[0].GeoCoordinates.String())

	require.Len(t, plan.Itinerary, 1)
	day := plan.Itinerary[0]
	assert.Equal(t, 2, day.Day)
	require.Len(t, day.Plan, 1)
	assert.Equal(t, "Lalbagh", day.Plan[0].Place)
	assert.Equal(t, "Gardens", day.Plan[0].Details)
	assert.Equal(t, Text("30"), day.Plan[0].TicketPricing)
	assert.Equal(t, "Morning", day.Plan[0].BestTimeToVisit)
}

func TestTripPlan_MissingAndNullKeysStayNil(t *testing.T) {
	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(`{"itinerary": null}`), &plan))
	assert.Nil(t, plan.Hotels)
	assert.Nil(t, plan.Itinerary)

	var empty TripPlan
	require.NoError(t, json.Unmarshal([]byte(`{"hotels": [], "itinerary": []}`), &empty))
	assert.NotNil(t, empty.Hotels)
	assert.Empty(t, empty.Hotels)
	assert.NotNil(t, empty.Itinerary)
}

func TestTripPlan_ItineraryKeyedByDay(t *testing.T) {
	raw := `{"itinerary": {"day2": {"plan": [{"place": "B"}]}, "day1": {"plan": [{"place": "A"}]}, "day10": {"plan": []}}}`

	var plan TripPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))

	require.Len(t, plan.Itinerary, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{plan.Itinerary[0].Day, plan.Itinerary[1].Day, plan.Itinerary[2].Day})
	assert.Equal(t, "A", plan.Itinerary[0].Plan[0].Place)
}

func TestGeoCoordinates_Forms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "object lat lng", raw: `{"lat": "1.5", "lng": 2}`, want: "1.500000, 2.000000"},
		{name: "array", raw: `[3, 4]`, want: "3.000000, 4.000000"},
		{name: "string pair", raw: `"5.25, 6.5"`, want: "5.250000, 6.500000"},
		{name: "free text", raw: `"near the river"`, want: "near the river"},
		{name: "null", raw: `null`, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var g GeoCoordinates
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &g))
			assert.Equal(t, tc.want, g.String())
		})
	}
}

func TestBudgetAndPartyValidity(t *testing.T) {
	for _, b := range Budgets {
		assert.True(t, b.Valid())
	}
	for _, p := range PartyTypes {
		assert.True(t, p.Valid())
	}
	assert.False(t, Budget("luxury").Valid())
	assert.False(t, PartyType("Solo").Valid())
}
