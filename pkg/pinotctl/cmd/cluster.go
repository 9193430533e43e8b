package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect the cluster",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Show the cluster name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, c, err := connect(cmd)
				if err != nil {
					return err
				}
				resp, err := c.ClusterInfo(cmd.Context())
				if err != nil {
					return err
				}
				return render(rt, resp.Data, func(w io.Writer, _ bool) {
					_, _ = fmt.Fprintln(w, resp.Data.ClusterName)
				})
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Show the cluster configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, c, err := connect(cmd)
				if err != nil {
					return err
				}
				resp, err := c.ClusterConfig(cmd.Context())
				if err != nil {
					return err
				}
				return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteKeyValueTable(w, resp.Data) })
			},
		},
	)
	return cmd
}
