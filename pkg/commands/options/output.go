package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chobits1012/japantriphelper/pkg/store"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError renders a command error. Storage-quota failures get an
// explicit warning so the user knows the write was lost.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrStorageFull) {
		warn := color.New(color.FgHiRed, color.Bold)
		_, _ = warn.Fprintln(color.Output, "storage is full: the last change was NOT saved")
	}
	if o.JSON {
		out := map[string]string{
			"error": err.Error(),
		}
		b, merr := json.Marshal(out)
		if merr != nil {
			return merr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
