package options

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ConfirmOptions gates destructive commands.
type ConfirmOptions struct {
	Yes bool
}

// AddConfirmArgs wires the confirmation bypass flag.
func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// Confirm prompts on stdin unless --yes was passed. Anything but an
// explicit yes declines.
func (o *ConfirmOptions) Confirm(what string) bool {
	if o.Yes {
		return true
	}
	fmt.Printf("%s [y/N]: ", what)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
