// Command mahd is a terminal client for the Mahd platform.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/api"
	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/session"
	logsvc "github.com/AhmedMostafa129/Mahd/services/logger"
	filestore "github.com/AhmedMostafa129/Mahd/storage/sessionstore/file"
)

var logger core.Logger

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger = logsvc.New(conf)

	validate, _ := core.NewValidator()
	transport := &api.Transport{DeviceID: conf.DeviceID, Logger: logger, Production: conf.IsProduction()}
	client := api.NewClient(conf.API.BaseURL, api.NewHTTPClient(transport, conf.API.Timeout))

	store := session.NewStore(filestore.New(conf.CLI.StorePath), logger)
	if err := store.Load(context.Background()); err != nil {
		logger.Warn("could not read saved session", "path", conf.CLI.StorePath, "error", err)
	}

	cli := newCommandLine(auth.NewService(client, validate, logger), lms.NewServices(client), store, os.Stdout)
	err = cli.run(os.Args)
	if syncer, ok := logger.(interface{ Sync() error }); ok {
		_ = syncer.Sync()
	}
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
