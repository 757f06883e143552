// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// TripOptions selects which trip a command operates on.
type TripOptions struct {
	Trip string
}

// AddTripArg wires the trip selection flag on the provided command.
func AddTripArg(cmd *cobra.Command, o *TripOptions) {
	cmd.Flags().StringVarP(&o.Trip, "trip", "t", "",
		"Trip to operate on, by id or name.")
	_ = cmd.MarkFlagRequired("trip")
}

// IDOptions toggles raw id display in listings.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs wires the id display flag on the provided command.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "id", "i", false,
		"Show ids in the output.")
}
