// Command migrate manages schema versions of the trendscope database
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/trendscope/pkg/repository"
	"github.com/umputun/trendscope/pkg/repository/migrations"
)

// Opts with all CLI options
type Opts struct {
	DB    string `long:"db" env:"DB" default:"file:trendscope.db?cache=shared&mode=rwc&_txlock=immediate" description:"database DSN"`
	Debug bool   `long:"dbg" env:"DEBUG" description:"debug mode"`

	Args struct {
		Command string `positional-arg-name:"command" description:"up, down, status or version"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if opts.Debug {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFunc)
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Opts, out io.Writer) error {
	if opts.DB == "" {
		opts.DB = repository.DefaultDSN
	}
	db, err := sqlx.Open("sqlite", opts.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	p, err := migrations.NewProvider(db.DB)
	if err != nil {
		return err
	}

	switch opts.Args.Command {
	case "up":
		res, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range res {
			fmt.Fprintf(out, "applied %d %s in %v\n", r.Source.Version, sourceName(r.Source), r.Duration)
		}
		if len(res) == 0 {
			fmt.Fprintln(out, "no pending migrations")
		}
	case "down":
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintf(out, "rolled back %d %s in %v\n", r.Source.Version, sourceName(r.Source), r.Duration)
	case "status":
		res, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		for _, st := range res {
			applied := "pending"
			if st.State == goose.StateApplied {
				applied = st.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%5d  %-40s %s\n", st.Source.Version, sourceName(st.Source), applied)
		}
	case "version":
		v, err := p.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("get version: %w", err)
		}
		fmt.Fprintf(out, "%d\n", v)
	default:
		return fmt.Errorf("unknown command %q, expected up, down, status or version", opts.Args.Command)
	}
	return nil
}

func sourceName(s *goose.Source) string {
	if s.Path != "" {
		return s.Path
	}
	return fmt.Sprintf("go migration %d", s.Version)
}
