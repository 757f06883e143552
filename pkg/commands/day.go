package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/runner/days"
	"github.com/chobits1012/japantriphelper/pkg/runner/tickets"
)

func addDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage a trip's days",
		Example: `
tripctl day show --trip "Tokyo 2026"
tripctl day add --trip "Tokyo 2026"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDayShow(cmd)
	addDayAdd(cmd)
	addDayRemove(cmd)
	addDayReorder(cmd)
	addDaySet(cmd)
	addDayWeather(cmd)
	addDayTicket(cmd)

	topLevel.AddCommand(cmd)
}

func addDayShow(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := days.Show{ShowID: io.ShowID, Registry: reg, KV: disk, Trip: to.Trip}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDayAdd(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a day to the itinerary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := days.Add{Registry: reg, KV: disk, Trip: to.Trip}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDayRemove(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "rm [day-id]",
		Short: "Remove a day",
		Long:  "Remove a day from the itinerary. The last remaining day cannot be removed.",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a day id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !co.Confirm("delete day " + args[0]) {
				return nil
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := days.Remove{Registry: reg, KV: disk, Trip: to.Trip, Day: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDayReorder(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "reorder [day-id] [over-day-id]",
		Short: "Move a day to another day's position",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 2 {
				return errors.New("requires a day id and a target position day id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := days.Reorder{Registry: reg, KV: disk, Trip: to.Trip, Active: args[0], Over: args[1]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDaySet(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		title    string
		desc     string
		location string
		tips     string
	)

	cmd := &cobra.Command{
		Use:   "set [day-id]",
		Short: "Update one day's fields",
		Long:  "Update one day's fields. Only flags that are set change anything.",
		Example: `
tripctl day set d41d8cd9 --trip "Tokyo 2026" --title "Asakusa morning"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a day id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			patch := itinerary.Patch{ID: args[0]}
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Desc = &desc
			}
			if cmd.Flags().Changed("location") {
				patch.Location = &location
			}
			if cmd.Flags().Changed("tips") {
				patch.Tips = &tips
			}
			s := days.Set{Registry: reg, KV: disk, Trip: to.Trip, Patch: patch}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Day title.")
	cmd.Flags().StringVar(&desc, "desc", "", "Day description.")
	cmd.Flags().StringVar(&location, "location", "", "Day location.")
	cmd.Flags().StringVar(&tips, "tips", "", "Day tips.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDayWeather(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "weather [day-id]",
		Short: "Fetch the forecast for a day's location",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a day id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := days.Weather{Registry: reg, KV: disk, Trip: to.Trip, Day: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDayTicket(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		eventID string
	)

	cmd := &cobra.Command{
		Use:   "ticket [day-id] [image-file]",
		Short: "Attach a ticket image to an event",
		Example: `
tripctl day ticket d41d8cd9 shinkansen.png --trip "Tokyo 2026" --event 9e107d9d
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 2 {
				return errors.New("requires a day id and an image file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := tickets.Attach{
				Registry: reg,
				KV:       disk,
				Trip:     to.Trip,
				Day:      args[0],
				Event:    eventID,
				Path:     args[1],
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event id the ticket belongs to.")
	_ = cmd.MarkFlagRequired("event")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
