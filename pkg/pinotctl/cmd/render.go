package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

// render writes obj in the selected format. table is called for the table and
// wide formats with wide set accordingly.
func render(rt *runtimeState, obj any, table func(w io.Writer, wide bool)) error {
	format, err := rt.OutputFormat()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatTable, output.FormatWide:
		table(rt.Writer(), format == output.FormatWide)
		return nil
	case output.FormatTemplate:
		return output.WriteTemplate(rt.Writer(), rt.templateText, obj)
	default:
		return output.WriteObject(rt.Writer(), format, obj)
	}
}

// connect is the common prologue of commands that talk to the controller.
func connect(cmd *cobra.Command) (*runtimeState, *client.Client, error) {
	rt, err := getRuntime(cmd)
	if err != nil {
		return nil, nil, err
	}
	if _, err := rt.OutputFormat(); err != nil {
		return nil, nil, err
	}
	c, err := buildClient(cmd.Context(), rt)
	if err != nil {
		return nil, nil, err
	}
	return rt, c, nil
}
