package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/events"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events on a day's schedule",
		Example: `
tripctl event add "teamLab Planets" --trip "Tokyo 2026" --day d41d8cd9 --time 14:00
tripctl event rm 9e107d9d --trip "Tokyo 2026" --day d41d8cd9
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		dayID     string
		at        string
		desc      string
		transport string
		category  string
		mapQuery  string
		highlight bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an event to a day",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cat, err := trip.ParseEventCategory(category)
			if err != nil {
				return err
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := events.Add{
				Registry: reg,
				KV:       disk,
				Trip:     to.Trip,
				Day:      dayID,
				Event: trip.Event{
					Time:      at,
					Title:     strings.Join(args, " "),
					Desc:      desc,
					Transport: transport,
					Highlight: highlight,
					Category:  cat,
					MapQuery:  mapQuery,
				},
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&dayID, "day", "", "Day the event belongs to.")
	_ = cmd.MarkFlagRequired("day")
	cmd.Flags().StringVar(&at, "time", "", "Start time, HH:MM.")
	cmd.Flags().StringVar(&desc, "desc", "", "Event description.")
	cmd.Flags().StringVar(&transport, "transport", "", "How to get there.")
	cmd.Flags().StringVar(&category, "category", "", "Event category.")
	cmd.Flags().StringVar(&mapQuery, "map", "", "Map search query.")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "Mark the event as a highlight.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEventRemove(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	co := &options.ConfirmOptions{}
	var dayID string

	cmd := &cobra.Command{
		Use:   "rm [event-id]",
		Short: "Remove an event from a day",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an event id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !co.Confirm("delete event " + args[0]) {
				return nil
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := events.Remove{Registry: reg, KV: disk, Trip: to.Trip, Day: dayID, Event: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&dayID, "day", "", "Day the event belongs to.")
	_ = cmd.MarkFlagRequired("day")
	options.AddTripArg(cmd, to)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
