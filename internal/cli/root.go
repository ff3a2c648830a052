package cli

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-trip-planner/internal/pkg/config"
)

type rootOptions struct {
	envFile string
	cfg     *config.Config
}

// NewRootCmd builds the tripplanner command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tripplanner",
		Short: "Generate travel plans with hotels and a day by day itinerary",
		Long: `tripplanner asks a generative text service for a trip plan (hotel options
and a per-day itinerary) for a destination, trip length, budget and travel
party. It runs as a web service with an interactive planner, or from the
command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.envFile); err != nil {
				log.Println("Warning: Error loading .env file, using environment variables")
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newPlanCmd(opts))
	root.AddCommand(newSuggestCmd(opts))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
