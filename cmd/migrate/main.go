package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/starwars-blog/api/pkg/config"
	"github.com/starwars-blog/api/pkg/database"
	"github.com/starwars-blog/api/pkg/logger"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "up")
	}

	if err := newApp().Run(context.Background(), args); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back the database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "database-url", Sources: cli.EnvVars("DATABASE_URL"), Usage: "overrides DATABASE_URL from config"},
		},
		Commands: []*cli.Command{
			migrationCommand("up", "Apply all pending migrations", database.MigrateUp),
			migrationCommand("down", "Roll back the latest migration", database.MigrateDown),
			migrationCommand("reset", "Roll back every migration", database.MigrateReset),
			migrationCommand("status", "Show applied and pending migrations", database.MigrateStatus),
			{
				Name:  "version",
				Usage: "Print the current schema version",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c, func(ctx context.Context, db *gorm.DB) error {
						v, err := database.SchemaVersion(ctx, db)
						if err != nil {
							return err
						}
						fmt.Fprintln(os.Stdout, v)
						return nil
					})
				},
			},
		},
	}
}

func migrationCommand(name, usage string, run func(context.Context, *gorm.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, c *cli.Command) error {
			return withDatabase(ctx, c, func(ctx context.Context, db *gorm.DB) error {
				if err := run(ctx, db); err != nil {
					return err
				}
				logger.L().Info("migrations completed", zap.String("command", name))
				return nil
			})
		},
	}
}

func withDatabase(ctx context.Context, c *cli.Command, fn func(context.Context, *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	defer logger.Sync()

	url := cfg.DatabaseURL
	if v := c.String("database-url"); v != "" {
		url = v
	}

	db, err := database.Open(ctx, url, database.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	return fn(ctx, db)
}
