package tripplan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/llm"
)

type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) SendMessage(ctx context.Context, history []llm.Turn, message string, cfg llm.GenerationConfig) (string, error) {
	args := m.Called(ctx, history, message, cfg)
	return args.String(0), args.Error(1)
}

func (m *MockChatModel) Model() string { return "mock-model" }

var lisbon = models.TripRequest{Location: "Lisbon, Portugal", Days: 3, Budget: models.BudgetMedium, People: models.PartyCouple}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(lisbon)

	assert.Equal(t,
		"Generate Travel Plan for Location: Lisbon, Portugal, for 3 Days for Couple with a medium budget. "+
			"Give me a Hotels options list with Hotel Name, Hotel Address, Price in INR, Hotel Image URL, "+
			"Geo Coordinates, Rating, Descriptions, and suggest itinerary with Place Name, Place Details, "+
			"Place Image URL, Geo Coordinates, Ticket Pricing, Time to travel each of the locations for 3 days "+
			"with each day plan with the best time to visit in JSON format.",
		prompt)
}

func TestBuildPrompt_EmptyRequestIsNotRejected(t *testing.T) {
	prompt := BuildPrompt(models.TripRequest{})
	assert.Contains(t, prompt, "Location: , for 0 Days for  with a  budget.")
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantNil       bool
		wantHotels    int
		wantItinerary int
		hotelsNil     bool
		itineraryNil  bool
	}{
		{
			name:          "plain object",
			input:         `{"hotels":[{"hotelName":"A"}],"itinerary":[{"day":1,"plan":[]}]}`,
			wantHotels:    1,
			wantItinerary: 1,
		},
		{
			name:          "wrapper object",
			input:         `{"tripPlan":{"hotels":[{"name":"A"},{"name":"B"}],"itinerary":[]}}`,
			wantHotels:    2,
			wantItinerary: 0,
		},
		{
			name:          "surrounding whitespace",
			input:         "\n  {\"hotels\":[],\"itinerary\":[]}\n",
			wantHotels:    0,
			wantItinerary: 0,
		},
		{
			name:         "missing keys",
			input:        `{"location":"Lisbon"}`,
			hotelsNil:    true,
			itineraryNil: true,
		},
		{
			name:    "json null",
			input:   `null`,
			wantNil: true,
		},
		{
			name:         "json array",
			input:        `[1,2,3]`,
			hotelsNil:    true,
			itineraryNil: true,
		},
		{
			name:         "json string",
			input:        `"no plan today"`,
			hotelsNil:    true,
			itineraryNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ParsePlan(tt.input)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, plan)
				return
			}
			require.NotNil(t, plan)
			if tt.hotelsNil {
				assert.Nil(t, plan.Hotels)
			} else {
				assert.NotNil(t, plan.Hotels)
				assert.Len(t, plan.Hotels, tt.wantHotels)
			}
			if tt.itineraryNil {
				assert.Nil(t, plan.Itinerary)
			} else {
				assert.NotNil(t, plan.Itinerary)
				assert.Len(t, plan.Itinerary, tt.wantItinerary)
			}
		})
	}
}

func TestParsePlan_Malformed(t *testing.T) {
	for _, input := range []string{
		"",
		"Sorry, I cannot help with that.",
		`{"hotels": [`,
		"```json\n{\"hotels\": }\n```",
		"```json\n{\"hotels\":[],\"itinerary\":[]}\n```",
		"Here is your plan: {\"hotels\":[{\"name\":\"B\"}]} Enjoy!",
		`{"hotels":[]} {"itinerary":[]}`,
		`{"hotels": {"name": "not a list"}}`,
	} {
		plan, err := ParsePlan(input)
		assert.Nil(t, plan, "input %q", input)
		assert.ErrorIs(t, err, models.ErrMalformedPlan, "input %q", input)
	}
}

func TestGenerator_Generate_Success(t *testing.T) {
	chat := new(MockChatModel)
	chat.On("SendMessage", mock.Anything, History(lisbon), TriggerMessage, PlanConfig).
		Return(`{"hotels":[{"hotelName":"Hotel Avenida","price":120}],"itinerary":[{"day":1,"plan":[{"placeName":"Belém Tower"}]}]}`, nil).
		Once()

	plan, err := NewGenerator(chat, zap.NewNop()).Generate(context.Background(), lisbon)

	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Hotels, 1)
	assert.Equal(t, "Hotel Avenida", plan.Hotels[0].Name)
	assert.Equal(t, models.Text("120"), plan.Hotels[0].Price)
	require.Len(t, plan.Itinerary, 1)
	assert.Equal(t, "Belém Tower", plan.Itinerary[0].Plan[0].Place)
	chat.AssertExpectations(t)
}

func TestGenerator_Generate_ServiceFailure(t *testing.T) {
	chat := new(MockChatModel)
	serviceErr := errors.New("quota exceeded")
	chat.On("SendMessage", mock.Anything, mock.Anything, TriggerMessage, PlanConfig).Return("", serviceErr)

	plan, err := NewGenerator(chat, zap.NewNop()).Generate(context.Background(), lisbon)

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.ErrorIs(t, err, serviceErr)
	assert.NotErrorIs(t, err, models.ErrMalformedPlan)
}

func TestGenerator_Generate_MalformedReply(t *testing.T) {
	chat := new(MockChatModel)
	chat.On("SendMessage", mock.Anything, mock.Anything, TriggerMessage, PlanConfig).Return("not json at all", nil)

	plan, err := NewGenerator(chat, zap.NewNop()).Generate(context.Background(), lisbon)

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, models.ErrMalformedPlan)
	assert.NotErrorIs(t, err, models.ErrGenerationFailed)
}

func TestGenerator_Generate_SendsRequestVerbatim(t *testing.T) {
	odd := models.TripRequest{Location: "", Days: -2, Budget: "luxury", People: "Robots"}
	chat := new(MockChatModel)
	chat.On("SendMessage", mock.Anything, History(odd), TriggerMessage, PlanConfig).Return(`{}`, nil).Once()

	plan, err := NewGenerator(chat, zap.NewNop()).Generate(context.Background(), odd)

	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Nil(t, plan.Hotels)
	chat.AssertExpectations(t)
}
