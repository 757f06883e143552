package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/cloudsync"
)

func addCloud(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Mirror trips to the remote document store",
		Long: "Push a trip to the remote store or pull one down by sync code.\n" +
			"Sync is manual and last-writer-wins: whichever side pushes last owns the document.",
		Example: `
tripctl cloud push --trip "Tokyo 2026"
tripctl cloud pull A1B2C3
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCloudPush(cmd)
	addCloudPull(cmd)

	topLevel.AddCommand(cmd)
}

func addCloudPush(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	cl := &options.CloudOptions{}
	var code string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a trip to the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := cloudsync.Push{
				Registry: reg,
				KV:       disk,
				Config:   cl.Config(),
				Trip:     to.Trip,
				Code:     code,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Overwrite the document at this sync code.")
	options.AddTripArg(cmd, to)
	options.AddCloudArgs(cmd, cl)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCloudPull(topLevel *cobra.Command) {
	cl := &options.CloudOptions{}
	co := &options.ConfirmOptions{}
	var into string

	cmd := &cobra.Command{
		Use:   "pull [code]",
		Short: "Pull a trip down by sync code",
		Long: "Pull a trip down by sync code as a new trip, or with --into over\n" +
			"an existing trip, keeping its id and catalog position.",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a sync code")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if into != "" && !co.Confirm("overwrite trip "+into+" with the pulled document") {
				return nil
			}
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := cloudsync.Pull{Registry: reg, Config: cl.Config(), Code: args[0], Into: into}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "Existing trip to overwrite instead of creating a new one.")
	options.AddCloudArgs(cmd, cl)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
