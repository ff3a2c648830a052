package tripplan

import (
	"fmt"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/llm"
)

// TriggerMessage is sent as the final user turn after the prompt has been
// registered as conversation history.
const TriggerMessage = "INSERT_INPUT_HERE"

// PlanConfig holds the fixed decoding parameters for trip plan generation.
var PlanConfig = llm.GenerationConfig{
	Temperature:      1,
	TopP:             0.95,
	TopK:             64,
	MaxOutputTokens:  8192,
	ResponseMIMEType: "application/json",
}

const promptTemplate = "Generate Travel Plan for Location: %s, for %d Days for %s with a %s budget. " +
	"Give me a Hotels options list with Hotel Name, Hotel Address, Price in INR, Hotel Image URL, " +
	"Geo Coordinates, Rating, Descriptions, and suggest itinerary with Place Name, Place Details, " +
	"Place Image URL, Geo Coordinates, Ticket Pricing, Time to travel each of the locations for %d days " +
	"with each day plan with the best time to visit in JSON format."

// BuildPrompt embeds the request verbatim; empty or odd values are not
// rejected.
func BuildPrompt(req models.TripRequest) string {
	return fmt.Sprintf(promptTemplate, req.Location, req.Days, req.People, req.Budget, req.Days)
}

// History is the one-turn conversation the trigger message is sent into.
func History(req models.TripRequest) []llm.Turn {
	return []llm.Turn{{Role: llm.RoleUser, Text: BuildPrompt(req)}}
}
