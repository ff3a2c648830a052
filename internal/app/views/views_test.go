package views

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/render"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func TestPlanner_FormReflectsState(t *testing.T) {
	state := planner.State{
		Location: "Lisbon",
		Days:     3,
		Budget:   models.BudgetHigh,
		People:   models.PartyFamily,
		Suggestions: []models.Suggestion{
			{PlaceID: 1, DisplayName: "Lisbon, Portugal"},
			{PlaceID: 2, DisplayName: "Lisbon, Maine"},
		},
	}

	doc := renderDoc(t, Planner(NewPlannerView(state)))

	val, _ := doc.Find("input#location").Attr("value")
	assert.Equal(t, "Lisbon", val)
	days, _ := doc.Find(`input[name="days"]`).Attr("value")
	assert.Equal(t, "3", days)
	assert.Equal(t, "high", doc.Find(`select[name="budget"] option[selected]`).AttrOr("value", ""))
	assert.Equal(t, "Family", doc.Find(`select[name="people"] option[selected]`).AttrOr("value", ""))

	items := doc.Find("#suggestions li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "Lisbon, Portugal", strings.TrimSpace(items.First().Text()))
	assert.Equal(t, "/planner/suggestions/1", items.Last().AttrOr("hx-post", ""))
}

func TestResults_Loading(t *testing.T) {
	doc := renderDoc(t, Results(NewPlannerView(planner.State{Loading: true, Phase: planner.PhaseLoading})))

	assert.Equal(t, 1, doc.Find("[data-loading]").Length())
	assert.Equal(t, "/planner/results", doc.Find("#results").AttrOr("hx-get", ""))
	assert.Equal(t, 0, doc.Find("[data-hotels]").Length())
}

func TestResults_IdleWithoutPlanRendersNothing(t *testing.T) {
	doc := renderDoc(t, Results(NewPlannerView(planner.State{Phase: planner.PhaseIdle})))

	assert.Equal(t, 0, doc.Find("[data-loading]").Length())
	assert.Equal(t, 0, doc.Find("[data-hotels]").Length())
	assert.Equal(t, 0, doc.Find("[data-placeholder]").Length())
	_, polling := doc.Find("#results").Attr("hx-get")
	assert.False(t, polling)
}

func TestResults_FailedWithoutPlanRendersPlaceholders(t *testing.T) {
	doc := renderDoc(t, Results(NewPlannerView(planner.State{Phase: planner.PhaseFailed})))

	assert.Equal(t, 0, doc.Find("[data-loading]").Length())
	placeholders := doc.Find("[data-placeholder]")
	require.Equal(t, 2, placeholders.Length())
	assert.Equal(t, render.HotelsPlaceholder, placeholders.Eq(0).Text())
	assert.Equal(t, render.ItineraryPlaceholder, placeholders.Eq(1).Text())
	_, polling := doc.Find("#results").Attr("hx-get")
	assert.False(t, polling)
}

func TestResults_PlaceholdersForMissingSections(t *testing.T) {
	doc := renderDoc(t, Results(NewPlannerView(planner.State{Plan: &models.TripPlan{}})))

	placeholders := doc.Find("[data-placeholder]")
	require.Equal(t, 2, placeholders.Length())
	assert.Equal(t, render.HotelsPlaceholder, placeholders.Eq(0).Text())
	assert.Equal(t, render.ItineraryPlaceholder, placeholders.Eq(1).Text())
}

func TestResults_EmptySectionsHaveNoPlaceholder(t *testing.T) {
	plan := &models.TripPlan{Hotels: []models.Hotel{}, Itinerary: []models.DayPlan{}}
	doc := renderDoc(t, Results(NewPlannerView(planner.State{Plan: plan})))

	assert.Equal(t, 1, doc.Find("[data-hotels]").Length())
	assert.Equal(t, 0, doc.Find("[data-placeholder]").Length())
	assert.Equal(t, 0, doc.Find("[data-hotel]").Length())
}

func TestResults_PlanIsRenderedInOrderAndEscaped(t *testing.T) {
	plan := &models.TripPlan{
		Hotels: []models.Hotel{
			{Name: "<b>Hotel</b> Avenida", Price: "120", Rating: "4.5"},
			{Name: "Casa Alfama"},
		},
		Itinerary: []models.DayPlan{
			{Day: 1, Plan: []models.Activity{{Place: "Belém Tower", TicketPricing: "€6", TimeToTravel: "2h"}}},
			{Day: 2, Plan: []models.Activity{{Place: "Sintra"}, {Place: "Cascais"}}},
		},
	}
	state := planner.State{Location: "Lisbon", Days: 2, Budget: models.BudgetLow, People: models.PartyFriends, Plan: plan}

	doc := renderDoc(t, Results(NewPlannerView(state)))

	hotels := doc.Find("[data-hotel] h3")
	require.Equal(t, 2, hotels.Length())
	assert.Equal(t, "<b>Hotel</b> Avenida", hotels.Eq(0).Text())
	assert.Equal(t, 0, doc.Find("[data-hotel] h3 b").Length())

	days := doc.Find("[data-day]")
	require.Equal(t, 2, days.Length())
	assert.Equal(t, "day-1", days.Eq(0).AttrOr("id", ""))
	assert.Equal(t, "Day 1", days.Eq(0).Find("h4").Text())
	assert.Equal(t, 2, days.Eq(1).Find("[data-activity]").Length())
	assert.Equal(t, "Sintra", days.Eq(1).Find("[data-activity] h5").First().Text())

	assert.Equal(t, "2 days in Lisbon · Low budget · Friends", doc.Find("[data-summary]").Text())
}

func TestLayout_WrapsContent(t *testing.T) {
	doc := renderDoc(t, Layout(models.Layout{
		Title:   "Trip Planner",
		Content: Planner(NewPlannerView(planner.State{})),
	}))

	assert.Equal(t, "Trip Planner", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("main #planner").Length())
}
