package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telekom/pinotctl/pkg/pinotctl/output"
)

// NewZKCommand groups the coordination tree commands. The client sends paths
// and queries as given, so every subcommand encodes them here.
func NewZKCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zk",
		Short: "Browse and edit the cluster coordination tree",
	}
	cmd.AddCommand(
		newZKListCommand(),
		newZKGetCommand(),
		newZKStatCommand(),
		newZKListWithStatCommand(),
		newZKPutCommand(),
		newZKDeleteCommand(),
	)
	return cmd
}

func newZKListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls PATH",
		Short: "List the children of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKList(cmd.Context(), url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteNamesTable(w, "name", resp.Data) })
		},
	}
}

func newZKGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH",
		Short: "Print the content of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKData(cmd.Context(), url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) {
				_, _ = fmt.Fprintln(w, resp.Data.String())
			})
		},
	}
}

func newZKStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "Show the stat of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKStat(cmd.Context(), url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteZKStatTable(w, args[0], resp.Data) })
		},
	}
}

func newZKListWithStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsl PATH",
		Short: "List the children of a node with their stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKListWithStat(cmd.Context(), url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) { output.WriteZKListWithStatTable(w, resp.Data) })
		},
	}
}

func newZKPutCommand() *cobra.Command {
	var (
		path            string
		data            string
		dataFile        string
		expectedVersion int
	)
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Write the content of a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("data") && dataFile != "" {
				return errors.New("--data and --data-file are mutually exclusive")
			}
			if dataFile != "" {
				content, err := readDataFile(cmd, dataFile)
				if err != nil {
					return err
				}
				data = content
			}
			query := zkPutQuery(path, data, expectedVersion)

			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKPutData(cmd.Context(), query)
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) {
				_, _ = fmt.Fprintln(w, resp.Data.Status)
			})
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Node path")
	cmd.Flags().StringVar(&data, "data", "", "Node content")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "Read node content from a file, - for stdin")
	cmd.Flags().IntVar(&expectedVersion, "expected-version", -1, "Only write if the node has this version")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

// zkPutQuery encodes the write parameters. The client sends the query string
// as given, so encoding happens here.
func zkPutQuery(path, data string, expectedVersion int) string {
	values := url.Values{}
	values.Set("path", path)
	values.Set("data", data)
	if expectedVersion >= 0 {
		values.Set("expectedVersion", strconv.Itoa(expectedVersion))
	}
	return values.Encode()
}

func readDataFile(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read data file: %w", err)
	}
	return string(content), nil
}

func newZKDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete a node and its children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, c, err := connect(cmd)
			if err != nil {
				return err
			}
			resp, err := c.ZKDeleteNode(cmd.Context(), url.QueryEscape(args[0]))
			if err != nil {
				return err
			}
			return render(rt, resp.Data, func(w io.Writer, _ bool) {
				_, _ = fmt.Fprintln(w, resp.Data.Status)
			})
		},
	}
}
