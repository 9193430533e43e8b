package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "table",
		Aliases: []string{"tables"},
		Short:   "Inspect tables",
	}
	cmd.AddCommand(
		newTableListCommand(),
		newTableGetCommand(),
		newTableSizeCommand(),
		newTableStateCommand("idealstate", "Show the ideal state of a table", (*client.Client).IdealState),
		newTableStateCommand("externalview", "Show the external view of a table", (*client.Client).ExternalView),
		newTableSchemaCommand(),
	)
	return cmd
}

func newTableListCommand() *cobra.Command {
	var tableType string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := client.None[string]()
			if cmd.Flags().Changed("type") {
				t := strings.ToUpper(tableType)
				if t != "" && t != client.TableTypeOffline && t != client.TableTypeRealtime {
					return fmt.Errorf("invalid table type %q: must be %s or %s", tableType, client.TableTypeOffline, client.TableTypeRealtime)
				}
				filter = client.Some(t)
			}
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.QueryTables(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteNamesTable(w, "table", resp.Data.Tables) })
		},
	}
	cmd.Flags().StringVar(&tableType, "type", "", "Only list tables of this type: OFFLINE or REALTIME")
	return cmd
}

func newTableGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show a table and its segment assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.TableDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteIdealStateTable(w, resp.Data) })
		},
	}
}

func newTableSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "size NAME",
		Short: "Show the size of a table; -o wide lists segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.TableSize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, wide bool) {
				if wide {
					output.WriteTableSizeTableWide(w, resp.Data)
					return
				}
				output.WriteTableSizeTable(w, resp.Data)
			})
		},
	}
}

type stateFunc func(*client.Client, context.Context, string) (*client.Response[client.IdealState], error)

func newTableStateCommand(use, short string, fetch stateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := fetch(c, cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteIdealStateTable(w, resp.Data) })
		},
	}
}

func newTableSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema NAME",
		Short: "Show the schema of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.TableSchema(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteSchemaTable(w, resp.Data) })
		},
	}
}
