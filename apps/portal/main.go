// Command portal serves the Mahd web portal.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/AhmedMostafa129/Mahd/apps/portal/di"
	echoportal "github.com/AhmedMostafa129/Mahd/apps/portal/echo"
	"github.com/AhmedMostafa129/Mahd/core"
)

func main() {
	c := di.New()

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		backend *di.SessionBackend,
		server *echoportal.Server,
	) {
		// =========================================================================
		// Initialize App

		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build),
			"env", conf.Env, "sessionBackend", conf.Session.Backend, "api", conf.API.BaseURL)

		if syncer, ok := logger.(interface{ Sync() error }); ok {
			defer func() { _ = syncer.Sync() }()
		}
		defer func() {
			if err := backend.Close(); err != nil {
				logger.Error("closing session storage", err)
			}
		}()
		defer logger.Info("Application stopped")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go backend.RunPruner(ctx, conf.Session.CookieTTL, logger)

		// =========================================================================
		// Start Portal

		go server.Start()

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancelShutdown()

			// asking listener to shut down and shed load
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
