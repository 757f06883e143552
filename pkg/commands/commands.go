package commands

import (
	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/commands/options"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Plan trips, itineraries, expenses, and packing on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTrip(topLevel)
	addDay(topLevel)
	addEvent(topLevel)
	addPlan(topLevel)
	addExpense(topLevel)
	addCheck(topLevel)
	addBackup(topLevel)
	addCloud(topLevel)
	addDraft(topLevel)
}

// load opens the disk store and the migrated registry. Migration runs at
// most once per installation; it is a no-op afterwards.
func load() (*registry.Registry, *store.Disk, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	disk, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	reg := registry.New(disk)
	if err := reg.Migrate(); err != nil {
		return nil, nil, err
	}
	return reg, disk, nil
}
