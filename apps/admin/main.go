// Command mahd-admin maintains the portal's postgres session storage.
package main

import (
	"fmt"
	"os"

	"github.com/AhmedMostafa129/Mahd/core"
	logsvc "github.com/AhmedMostafa129/Mahd/services/logger"
	"github.com/AhmedMostafa129/Mahd/storage/database"
	sqlxstore "github.com/AhmedMostafa129/Mahd/storage/sessionstore/sqlx"
)

var logger core.Logger

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)
	logger = logsvc.New(conf)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		db:       db.DB,
		sessions: sqlxstore.New(db),
		logger:   logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", "error", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
