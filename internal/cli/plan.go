package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/render"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/llm"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/logger"
)

type planOptions struct {
	location string
	days     int
	budget   string
	people   string
	output   string
}

// planOutput is what plan prints in json and yaml mode.
type planOutput struct {
	Request models.TripRequest `json:"request"`
	Summary string             `json:"summary"`
	Plan    *models.TripPlan   `json:"plan"`
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate one trip plan and print it",
		Example: `  tripplanner plan --location "Lisbon, Portugal" --days 3 --budget medium --people Couple
  tripplanner plan --location Porto --days 2 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.location, "location", "l", "", "destination (free text)")
	cmd.Flags().IntVarP(&opts.days, "days", "d", 0, "trip length in days")
	cmd.Flags().StringVarP(&opts.budget, "budget", "b", string(models.BudgetMedium), "budget tier: low, medium or high")
	cmd.Flags().StringVarP(&opts.people, "people", "p", string(models.PartyJustMe), `travel party: "Just Me", Couple, Family or Friends`)
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions) error {
	req := models.TripRequest{
		Location: opts.location,
		Days:     opts.days,
		Budget:   models.Budget(opts.budget),
		People:   models.PartyType(opts.people),
	}
	if !req.Budget.Valid() {
		return fmt.Errorf("invalid --budget %q", opts.budget)
	}
	if !req.People.Valid() {
		return fmt.Errorf("invalid --people %q", opts.people)
	}
	switch opts.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	cfg := root.cfg
	if err := cfg.RequireLLM(); err != nil {
		return err
	}

	// stdout carries the plan, logs go to stderr
	log, err := logger.NewStderr(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	chatModel, err := llm.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	log.Info("Generating trip plan",
		zap.String("location", req.Location),
		zap.Int("days", req.Days),
		zap.String("model", chatModel.Model()),
	)
	plan, err := tripplan.NewGenerator(chatModel, log).Generate(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output == outputText {
		return writePlanText(out, req, render.RenderPlan(plan))
	}
	return writeStructured(out, opts.output, planOutput{
		Request: req,
		Summary: render.Summarize(req),
		Plan:    plan,
	})
}

func writePlanText(w io.Writer, req models.TripRequest, result *render.Result) error {
	fmt.Fprintln(w, render.Summarize(req))
	if result == nil {
		_, err := fmt.Fprintln(w, "The service returned no plan.")
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Hotel Options")
	if result.Hotels.Placeholder != "" {
		fmt.Fprintln(w, "  "+result.Hotels.Placeholder)
	}
	for _, h := range result.Hotels.Cards {
		fmt.Fprintf(w, "  - %s\n", h.Name)
		fmt.Fprintf(w, "    %s\n", h.Address)
		fmt.Fprintf(w, "    Price: %s  Rating: %s\n", h.Price, h.Rating)
		if h.Description != "" {
			fmt.Fprintf(w, "    %s\n", h.Description)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Itinerary")
	if result.Itinerary.Placeholder != "" {
		fmt.Fprintln(w, "  "+result.Itinerary.Placeholder)
	}
	for _, d := range result.Itinerary.Days {
		fmt.Fprintf(w, "  %s\n", d.Title)
		for _, a := range d.Activities {
			fmt.Fprintf(w, "    - %s: %s\n", a.Place, a.Details)
			fmt.Fprintf(w, "      Tickets: %s  Travel: %s\n", a.TicketPricing, a.TimeToTravel)
		}
	}
	return nil
}
