package main

import (
	"os"

	pinotcmd "github.com/telekom/pinotctl/pkg/pinotctl/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := pinotcmd.NewRootCommand(pinotcmd.DefaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
