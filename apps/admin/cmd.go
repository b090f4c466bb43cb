package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/AhmedMostafa129/Mahd/core"
)

var errHelp = errors.New("help provided")

// pruner deletes stale session values.
type pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int64, error)
}

type commandLine struct {
	db       *sql.DB
	sessions pruner
	logger   core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, down, status, version, redo, reset, up-to N, down-to N)")
	fmt.Println("  prune -maxage DURATION - delete session values older than DURATION (e.g. 24h)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	pruneCmd := flag.NewFlagSet("prune", flag.ContinueOnError)
	pruneMaxAge := pruneCmd.Duration("maxage", 0, "Age past which a session value is deleted.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "prune":
		if err := pruneCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *pruneMaxAge <= 0 {
			pruneCmd.Usage()
			return errHelp
		}
		return cli.prune(*pruneMaxAge)
	default:
		cli.printUsage()
		return errHelp
	}
}
