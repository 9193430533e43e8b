/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/telekom/pinotctl/pkg/cli"
	"github.com/telekom/pinotctl/pkg/mockcontroller"
	"github.com/telekom/pinotctl/pkg/system"
	"github.com/telekom/pinotctl/pkg/version"
)

func main() {
	config, err := cli.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	zl := system.NewServerLogger(config.Debug)
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()
	log.With("version", version.GetBuildInfo().Version).Info("Starting mock controller")
	config.Print(log)

	fixtures := mockcontroller.DefaultFixtures()
	if config.FixturesPath != "" {
		loaded, err := mockcontroller.LoadFixtures(config.FixturesPath)
		if err != nil {
			log.Fatalf("Error loading fixtures: %v", err)
		}
		fixtures = loaded
		log.Infow("Loaded fixtures", "path", config.FixturesPath, "tables", len(fixtures.Tables))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mockcontroller.NewServer(zl, fixtures, config.Server())
	if err := server.Listen(ctx); err != nil {
		log.Errorf("Mock controller stopped: %v", err)
		stop()
		os.Exit(1)
	}
}
