package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewSegmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "segment",
		Aliases: []string{"segments"},
		Short:   "Inspect segments",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "metadata TABLE SEGMENT",
		Short: "Show the metadata of a segment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.SegmentMetadata(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteMetadataTable(w, resp.Data) })
		},
	})
	return cmd
}
