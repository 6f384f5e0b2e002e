// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the parkweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions.
// The init-dev and init-prod actions initialize the database schema
// with the development or production suitable data records.
//
//	./parkweb [-c /path/of/main/config.yaml]         # start web server
//	./parkweb db init-dev [-c /path/of/main/config.yaml]
//	./parkweb db init-prod [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/parking-backend/pkg/adapter/config"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/parksrp"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/parking-backend/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "parkweb",
	Short: "A shared car ownership and parking locations backend",
	Long: `A shared car ownership and parking locations backend.
Users may register cars, share their ownership with other users, and
record where a car was parked and until when, so any co-owner can
find it later. All REST APIs require HTTP Basic authentication and
every operation is authorized with a set of composable authorization
commands before touching the database. The ownership relation is
guarded by the database constraints too, so a car may never exist
without at least one owner and a user may never be added twice on the
same car.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	mech, err := c.Auth.NewMechanism()
	if err != nil {
		return fmt.Errorf("creating password mechanism: %w", err)
	}
	e := c.Gin.NewEngine()
	routes.Register(
		e, p, usersrp.New(), carsrp.New(), parksrp.New(), mech,
	)
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
