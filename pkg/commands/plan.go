package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/plan"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func addPlan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage a day's alternate plans",
		Example: `
tripctl plan switch d41d8cd9 B --trip "Tokyo 2026"
tripctl plan clear d41d8cd9 --trip "Tokyo 2026"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPlanSwitch(cmd)
	addPlanClear(cmd)

	topLevel.AddCommand(cmd)
}

func addPlanSwitch(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:       "switch [day-id] [plan]",
		Short:     "Switch a day to plan A, B, or C",
		ValidArgs: []string{"A", "B", "C"},
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 2 {
				return errors.New("requires a day id and a plan")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			target, err := trip.ParsePlan(args[1])
			if err != nil {
				return err
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := plan.Switch{Registry: reg, KV: disk, Trip: to.Trip, Day: args[0], Target: target}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addPlanClear(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear [day-id]",
		Short: "Clear the day's active plan",
		Long:  "Empty the active plan's events and mark its title. Other plans keep their snapshots.",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a day id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !co.Confirm("clear the active plan of day " + args[0]) {
				return nil
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := plan.Clear{Registry: reg, KV: disk, Trip: to.Trip, Day: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
