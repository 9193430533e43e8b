package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewInstanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instance",
		Aliases: []string{"instances"},
		Short:   "Inspect controller, broker and server instances",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List instances",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, c, err := connect(cmd)
				if err != nil {
					return err
				}
				resp, err := c.Instances(cmd.Context())
				if err != nil {
					return err
				}
				return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteNamesTable(w, "instance", resp.Data.Instances) })
			},
		},
		&cobra.Command{
			Use:   "get NAME",
			Short: "Show an instance",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, c, err := connect(cmd)
				if err != nil {
					return err
				}
				resp, err := c.Instance(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(rt, resp.Data, func(w io.Writer, wide bool) {
					if wide {
						output.WriteInstanceTableWide(w, resp.Data)
						return
					}
					output.WriteInstanceTable(w, resp.Data)
				})
			},
		},
	)
	return cmd
}
