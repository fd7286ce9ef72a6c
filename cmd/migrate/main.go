package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/minicommerce-backend/pkg/config"
	"github.com/angelmondragon/minicommerce-backend/pkg/db"
	"github.com/angelmondragon/minicommerce-backend/pkg/instance"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
	"github.com/angelmondragon/minicommerce-backend/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

var errUsage = errors.New("usage")

func (o options) source() migrate.Source {
	if o.dir == "" {
		return migrate.Embedded()
	}
	return migrate.Dir(o.dir)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.cmd, "cmd", "up", "migration command: up|down|status|version|create|validate")
	fs.StringVar(&opts.dir, "dir", "", "migrations directory on disk; empty uses the embedded set (create defaults to "+migrate.DefaultDir+")")
	fs.StringVar(&opts.name, "name", "", "migration name (create)")
	fs.StringVar(&opts.version, "version", "", "target version YYYYMMDDHHMMSS (version)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.cmd {
	case "create":
		if opts.dir == "" {
			opts.dir = migrate.DefaultDir
		}
		if opts.name == "" {
			return opts, fmt.Errorf("%w: -name is required for create", errUsage)
		}
	case "version":
		if opts.version == "" {
			return opts, fmt.Errorf("%w: -version is required for version", errUsage)
		}
	case "up", "down", "status", "validate":
	default:
		return opts, fmt.Errorf("%w: unknown -cmd %q", errUsage, opts.cmd)
	}
	return opts, nil
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(context.Background(), logg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s failed: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

// run executes one migration command. create and validate work on the
// directory alone; the rest need a database.
func run(ctx context.Context, logg *logger.Logger, opts options) error {
	switch opts.cmd {
	case "create":
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	case "validate":
		if err := migrate.Validate(opts.source()); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Instance:    instance.GetID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	src := opts.source()
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "cmd": opts.cmd, "migrations": src.String(), "db_driver": cfg.DB.Driver})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer client.Close()

	if cfg.DB.IsSQLite() {
		if opts.cmd != "up" {
			return fmt.Errorf("%s is not supported for sqlite; the schema is built from the models", opts.cmd)
		}
		logg.Info(ctx, "auto migrating sqlite schema")
		return client.AutoMigrate(ctx)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running migrations")
	if opts.cmd == "version" {
		return migrate.MigrateToVersion(ctx, sqlDB, src, opts.version)
	}
	return migrate.Run(ctx, sqlDB, src, opts.cmd)
}
