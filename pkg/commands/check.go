package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/packing"
)

func addCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Manage the packing checklist",
		Example: `
tripctl check list --trip "Tokyo 2026"
tripctl check add "passport" --trip "Tokyo 2026" --category documents
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCheckList(cmd)
	addCheckAddCategory(cmd)
	addCheckAddItem(cmd)
	addCheckToggle(cmd)
	addCheckCollapse(cmd)
	addCheckRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addCheckList(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the checklist with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.List{Registry: reg, KV: disk, Trip: to.Trip}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCheckAddCategory(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "add-category [title]",
		Short: "Add a checklist category",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a category title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.AddCategory{Registry: reg, KV: disk, Trip: to.Trip, Title: strings.Join(args, " ")}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCheckAddItem(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var categoryID string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a checklist item",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires item text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.AddItem{
				Registry: reg,
				KV:       disk,
				Trip:     to.Trip,
				Category: categoryID,
				Text:     strings.Join(args, " "),
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Category id the item belongs to.")
	_ = cmd.MarkFlagRequired("category")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCheckToggle(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "toggle [item-id]",
		Short: "Check or uncheck an item",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an item id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.Toggle{Registry: reg, KV: disk, Trip: to.Trip, Item: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCheckCollapse(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "collapse [category-id]",
		Short: "Collapse or expand a category",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a category id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.Collapse{Registry: reg, KV: disk, Trip: to.Trip, Category: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addCheckRemove(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	co := &options.ConfirmOptions{}
	var (
		categoryID string
		itemID     string
	)

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove an item or a whole category",
		Example: `
tripctl check rm --trip "Tokyo 2026" --item 9e107d9d
tripctl check rm --trip "Tokyo 2026" --category 45c48cce --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if categoryID == "" && itemID == "" {
				return errors.New("requires --item or --category")
			}
			what := "delete item " + itemID
			if itemID == "" {
				what = "delete category " + categoryID + " and its items"
			}
			if !co.Confirm(what) {
				return nil
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := packing.Remove{
				Registry: reg,
				KV:       disk,
				Trip:     to.Trip,
				Category: categoryID,
				Item:     itemID,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Category id to remove.")
	cmd.Flags().StringVar(&itemID, "item", "", "Item id to remove.")
	options.AddTripArg(cmd, to)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
