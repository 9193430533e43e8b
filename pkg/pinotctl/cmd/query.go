package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

func NewQueryCommand() *cobra.Command {
	var (
		endpoint     string
		options      []string
		trace        bool
		failOnErrors bool
	)
	cmd := &cobra.Command{
		Use:   "query SQL",
		Short: "Run a SQL query; pass - to read the statement from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql := args[0]
			if sql == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read query: %w", err)
				}
				sql = string(data)
			}
			sql = strings.TrimSpace(sql)
			if sql == "" {
				return errors.New("query is empty")
			}
			queryOptions, err := formatQueryOptions(options)
			if err != nil {
				return err
			}

			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.QueryResult(cmd.Context(), client.SQLQuery{SQL: sql, Trace: trace, QueryOptions: queryOptions}, endpoint)
			if err != nil {
				return err
			}
			if err := render(rt, resp.Data, func(w io.Writer, wide bool) { output.WriteSQLResultTable(w, resp.Data, wide) }); err != nil {
				return err
			}
			if failOnErrors && len(resp.Data.Exceptions) > 0 {
				return fmt.Errorf("query returned %d exception(s)", len(resp.Data.Exceptions))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "sql", "Query endpoint path relative to the controller")
	cmd.Flags().StringArrayVar(&options, "option", nil, "Query option as key=value; repeatable")
	cmd.Flags().BoolVar(&trace, "trace", false, "Request query tracing")
	cmd.Flags().BoolVar(&failOnErrors, "fail-on-exceptions", false, "Exit non-zero when the result carries exceptions")
	return cmd
}

// formatQueryOptions renders key=value pairs in the semicolon separated form
// accepted by the query endpoints.
func formatQueryOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	pairs := make([]string, 0, len(options))
	for _, opt := range options {
		key, value, ok := strings.Cut(opt, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return "", fmt.Errorf("invalid query option %q: expected key=value", opt)
		}
		pairs = append(pairs, strings.TrimSpace(key)+"="+strings.TrimSpace(value))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ";"), nil
}
