package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/logger"
)

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Look up location suggestions for a partial address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unsupported output format %q", output)
			}

			cfg := root.cfg
			log, err := logger.NewStderr(logger.ParseLevel(cfg.LogLevel))
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			client := location.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, log)
			suggestions := client.Suggest(cmd.Context(), strings.Join(args, " "))

			out := cmd.OutOrStdout()
			if output != outputText {
				return writeStructured(out, output, suggestions)
			}
			for _, s := range suggestions {
				fmt.Fprintln(out, s.DisplayName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	return cmd
}
