package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewTenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenant",
		Aliases: []string{"tenants"},
		Short:   "Inspect tenants",
	}
	cmd.AddCommand(
		newTenantListCommand(),
		newTenantGetCommand(),
		newTenantTablesCommand(),
		newTenantBrokersCommand(),
		newTenantServersCommand(),
	)
	return cmd
}

func newTenantListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List server and broker tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.Tenants(cmd.Context())
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteTenantsTable(w, resp.Data) })
		},
	}
}

func newTenantGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show the instances of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.Tenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteTenantDetailTable(w, resp.Data) })
		},
	}
}

func newTenantTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables NAME",
		Short: "List the tables of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.TenantTables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteNamesTable(w, "table", resp.Data.Tables) })
		},
	}
}

func newTenantBrokersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "brokers NAME",
		Short: "List the brokers of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.BrokersOfTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteNamesTable(w, "broker", resp.Data) })
		},
	}
}

func newTenantServersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "servers NAME",
		Short: "List the servers of a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ServersOfTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteServerListTable(w, resp.Data) })
		},
	}
}
