package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/runner/backups"
)

func addBackup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import trip backups",
		Example: `
tripctl backup export --trip "Tokyo 2026"
tripctl backup import Tokyo-2026.json
tripctl backup encode --trip "Tokyo 2026"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addBackupExport(cmd)
	addBackupImport(cmd)
	addBackupEncode(cmd)
	addBackupDecode(cmd)

	topLevel.AddCommand(cmd)
}

func addBackupExport(topLevel *cobra.Command) {
	to := &options.TripOptions{}
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a trip to a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := backups.Export{Registry: reg, KV: disk, Trip: to.Trip, Dir: dir}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the backup file.")
	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addBackupImport(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var into string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Create a new trip from a backup file",
		Long: "Create a new trip from a backup file. With --into, overwrite an\n" +
			"existing trip's data instead, keeping its id and catalog position.",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a backup file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if into != "" && !co.Confirm("overwrite trip "+into+" with "+args[0]) {
				return nil
			}
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := backups.Import{Registry: reg, Path: args[0], Into: into}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "Existing trip to overwrite instead of creating a new one.")
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addBackupEncode(topLevel *cobra.Command) {
	to := &options.TripOptions{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print a trip as a compact copy-paste string",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			reg, disk, err := load()
			if err != nil {
				return err
			}
			s := backups.Encode{Registry: reg, KV: disk, Trip: to.Trip}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddTripArg(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addBackupDecode(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var into string

	cmd := &cobra.Command{
		Use:   "decode [data]",
		Short: "Create a new trip from a compact string or bundle JSON",
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires the encoded backup data")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if into != "" && !co.Confirm("overwrite trip "+into+" with the decoded backup") {
				return nil
			}
			reg, _, err := load()
			if err != nil {
				return err
			}
			s := backups.Decode{Registry: reg, Input: args[0], Into: into}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "Existing trip to overwrite instead of creating a new one.")
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
