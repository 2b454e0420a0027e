package main

import (
	"context"
	"fmt"
	"log"

	dig_container "github.com/trezcool/masomo/apps/api/di/dig"
	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
)

func main() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		server echoapi.Server,
		shutdown dig_container.Shutdown,
	) {
		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer logger.Info("Application stopped")

		// =========================================================================
		// Start API Service

		errs := make(chan error, 1)
		go func() {
			logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
			errs <- server.Start()
		}()

		// =========================================================================
		// Shutdown

		select {
		case err := <-errs:
			if err != nil {
				logger.Fatal(fmt.Sprintf("server error: %v", err), err)
			}

		case sig := <-shutdown:
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Stop(ctx); err != nil {
				logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			}
		}
	}))
}

// must exits program if err happened; a bad schema catalog ends up here
func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
