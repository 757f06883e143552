package commands

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/expenses"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func addExpense(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Track spending",
		Example: `
tripctl expense add 1200 ramen --trip "Tokyo 2026" --category food
tripctl expense list --trip "Tokyo 2026"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addExpenseList(cmd)
	addExpenseAdd(cmd)
	addExpenseRemove(cmd)
	addExpenseConvert(cmd)

	topLevel.AddCommand(cmd)
}

func addExpenseList(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses with totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := expenses.List{Registry: reg, KV: disk, Trip: to.Trip}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addExpenseAdd(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var (
		dateStr     string
		categoryStr string
	)

	cmd := &cobra.Command{
		Use:   "add [amount] [title]",
		Short: "Add an expense in yen",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 2 {
				return errors.New("requires an amount and a title")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("amount must be a whole number of yen")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			amount, _ := strconv.Atoi(args[0])
			category, err := trip.ParseExpenseCategory(categoryStr)
			if err != nil {
				return err
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := expenses.Add{
				Registry: reg,
				KV:       disk,
				Trip:     to.Trip,
				Date:     dateStr,
				Title:    strings.Join(args[1:], " "),
				Amount:   amount,
				Category: category,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", time.Now().Format("2006-01-02"),
		"Expense date, YYYY-MM-DD.")
	cmd.Flags().StringVar(&categoryStr, "category", "",
		"Category: food, shopping, transport, hotel, other.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addExpenseRemove(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "rm [expense-id]",
		Short: "Remove an expense",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an expense id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !co.Confirm("delete expense " + args[0]) {
				return nil
			}
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := expenses.Remove{Registry: reg, KV: disk, Trip: to.Trip, ID: args[0]}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addExpenseConvert(topLevel *cobra.Command) {
	jpy := false

	cmd := &cobra.Command{
		Use:   "convert [amount]",
		Short: "Convert an amount using the live rate",
		Example: `
tripctl expense convert 100
tripctl expense convert 15000 --jpy
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an amount")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := expenses.Convert{}
			if jpy {
				amount, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.New("yen amount must be a whole number")
				}
				s.AmountJPY = amount
			} else {
				amount, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return errors.New("amount must be a number")
				}
				s.Amount = amount
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&jpy, "jpy", false, "Treat the amount as yen.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
