package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/trips"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func addTrip(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
		Example: `
tripctl trip list
tripctl trip add "Tokyo 2026" --start 2026-04-01 --days 5
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTripList(cmd)
	addTripAdd(cmd)
	addTripTemplate(cmd)
	addTripRemove(cmd)
	addTripSet(cmd)
	addTripReorder(cmd)

	topLevel.AddCommand(cmd)
}

func addTripList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	watch := false

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Example: `
tripctl trip list
tripctl trip list --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := trips.List{
				ShowID:   io.ShowID,
				Watch:    watch,
				Registry: reg,
				Disk:     disk,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and refresh when storage changes.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTripAdd(topLevel *cobra.Command) {
	var (
		startStr  string
		days      int
		seasonStr string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a trip",
		Example: `
tripctl trip add "Tokyo 2026" --start 2026-04-01 --days 5 --season spring
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a trip name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			start, err := trip.ParseDate(startStr)
			if err != nil {
				return err
			}
			season, err := trip.ParseSeason(seasonStr)
			if err != nil {
				return err
			}
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := trips.Add{
				Registry: reg,
				Name:     strings.Join(args, " "),
				Start:    start,
				Days:     days,
				Season:   season,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&startStr, "start", time.Now().Format("2006-01-02"),
		"Start date, YYYY-MM-DD.")
	cmd.Flags().IntVar(&days, "days", 3, "Number of days.")
	cmd.Flags().StringVar(&seasonStr, "season", "", "Season: spring, summer, autumn, winter.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTripTemplate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Add the built-in sample trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := trips.Template{Registry: reg}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTripRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "rm [trip]",
		Short: "Remove a trip and all its data",
		Example: `
tripctl trip rm "Tokyo 2026" --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a trip")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			name := strings.Join(args, " ")
			if !co.Confirm("delete trip " + name + " and all its data") {
				return nil
			}
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := trips.Remove{Registry: reg, Trip: name}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTripSet(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		name      string
		startStr  string
		seasonStr string
		budget    int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update trip settings",
		Example: `
tripctl trip set --trip "Tokyo 2026" --start 2026-04-08
tripctl trip set --trip "Tokyo 2026" --budget 300000
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := trips.Set{Registry: reg, KV: disk, Trip: to.Trip}
			if cmd.Flags().Changed("name") {
				s.Name = &name
			}
			if cmd.Flags().Changed("start") {
				start, err := trip.ParseDate(startStr)
				if err != nil {
					return err
				}
				s.Start = &start
			}
			if cmd.Flags().Changed("season") {
				season, err := trip.ParseSeason(seasonStr)
				if err != nil {
					return err
				}
				s.Season = &season
			}
			if cmd.Flags().Changed("budget") {
				s.Budget = &budget
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New trip name.")
	cmd.Flags().StringVar(&startStr, "start", "", "New start date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&seasonStr, "season", "", "New season.")
	cmd.Flags().IntVar(&budget, "budget", 0, "Budget in yen.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTripReorder(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reorder [trip] [over]",
		Short: "Move a trip to another trip's position",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 2 {
				return errors.New("requires a trip and a target position trip")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := trips.Reorder{Registry: reg, Active: args[0], Over: args[1]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
