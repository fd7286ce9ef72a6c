package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where new migrations are written, relative to the repo root.
const DefaultDir = "pkg/migrate/migrations"

// SQL migrations are written for postgres; sqlite databases are built from the models.
const dialect = "postgres"

//go:embed migrations/*.sql
var embedded embed.FS

// goose keeps its filesystem and dialect in package state.
var gooseMu sync.Mutex

// Source is a set of migrations: the copy compiled into the binary, or a directory on disk.
type Source struct {
	fsys fs.FS
	dir  string
}

// Embedded returns the migrations shipped with the binary.
func Embedded() Source {
	return Source{fsys: embedded, dir: "migrations"}
}

// Dir returns the migrations in a directory on disk.
func Dir(path string) Source {
	return Source{dir: path}
}

func (s Source) String() string {
	if s.fsys != nil {
		return "embedded:" + s.dir
	}
	return s.dir
}

// files returns a filesystem and root for reading the migration files directly.
func (s Source) files() (fs.FS, string) {
	if s.fsys != nil {
		return s.fsys, s.dir
	}
	return os.DirFS(s.dir), "."
}

func withGoose(src Source, fn func() error) error {
	if src.dir == "" {
		return fmt.Errorf("migration dir is required")
	}
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(src.fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn()
}

// Run executes a goose command (up, down, status, ...) against db.
func Run(ctx context.Context, db *sql.DB, src Source, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	return withGoose(src, func() error {
		if err := goose.RunContext(ctx, command, db, src.dir, args...); err != nil {
			return fmt.Errorf("goose %s: %w", command, err)
		}
		return nil
	})
}

// MigrateToVersion moves the schema up or down until it sits at targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, src Source, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	if db == nil {
		return fmt.Errorf("db is required")
	}

	return withGoose(src, func() error {
		current, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("get db version: %w", err)
		}
		switch {
		case current < target:
			err = goose.UpToContext(ctx, db, src.dir, target)
		case current > target:
			err = goose.DownToContext(ctx, db, src.dir, target)
		}
		if err != nil {
			return fmt.Errorf("migrate from %d to %d: %w", current, target, err)
		}
		return nil
	})
}
