package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/draft"
	"github.com/chobits1012/japantriphelper/pkg/runner/drafts"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func addDraft(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		dayID   string
		planStr string
	)

	cmd := &cobra.Command{
		Use:   "draft [prompt]",
		Short: "Draft itinerary content with the configured generator",
		Long: "Generate itinerary content from a prompt and merge it into the trip.\n" +
			"Drafts the whole trip by default, or one day with --day.\n" +
			"Requires draft.endpoint (and optionally draft.apikey) in the config file.",
		Example: `
tripctl draft "five relaxed days around Tokyo" --trip "Tokyo 2026"
tripctl draft "a rainy day alternative" --trip "Tokyo 2026" --day d41d8cd9 --plan B
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a prompt")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// Left empty, the draft lands in each day's active plan.
			var targetPlan trip.PlanID
			if cmd.Flags().Changed("plan") {
				p, err := trip.ParsePlan(planStr)
				if err != nil {
					return err
				}
				targetPlan = p
			}
			// load() reads the config file; viper keys are only set after it.
			reg, disk, err := load()
			if err != nil {
				return err
			}
			endpoint := viper.GetString("draft.endpoint")
			if endpoint == "" {
				return errors.New("no draft.endpoint configured")
			}
			s := drafts.Draft{
				Registry: reg,
				KV:       disk,
				Generator: &draft.HTTPGenerator{
					Endpoint: endpoint,
					APIKey:   viper.GetString("draft.apikey"),
				},
				Trip:   to.Trip,
				Day:    dayID,
				Prompt: strings.Join(args, " "),
				Plan:   targetPlan,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&dayID, "day", "", "Draft only this day.")
	cmd.Flags().StringVar(&planStr, "plan", "", "Plan the draft targets: A, B, or C. Defaults to the active plan.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
