// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/parking-backend/pkg/adapter/config"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres"
	"github.com/momeni/parking-backend/pkg/adapter/db/postgres/schema"
	"github.com/momeni/parking-backend/pkg/core/repo"
	"github.com/spf13/cobra"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data.
The database connection information are read from the config file.
All tables and indices are created if they are missing and no data
rows are seeded. The initialization runs in one transaction, so a
half-initialized schema is never persisted.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
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
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return schema.Init(ctx, tx.(*postgres.Tx))
		})
	})
	if err != nil {
		return fmt.Errorf("initializing DB schema: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
