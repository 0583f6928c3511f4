package main

import (
	"context"
	"os"

	"github.com/silinternational/cover-agri/actions"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/job"
	"github.com/silinternational/cover-agri/listeners"
	"github.com/silinternational/cover-agri/log"
)

var GitCommitHash string

// main is the starting point for the claims API
func main() {
	log.Init(domain.Env.GoEnv, GitCommitHash)

	ctx := context.Background()
	services, err := actions.ServicesFromEnv(ctx)
	if err != nil {
		log.Errorf("error initializing services, %s", err)
		os.Exit(1)
	}

	listeners.RegisterListeners()

	app := actions.NewApp(services)
	job.Init(&app.Worker, services.Store, services.Intake)

	err = app.Serve()

	if cpErr := services.Store.Checkpoint(ctx); cpErr != nil {
		log.Errorf("final checkpoint failed, %s", cpErr)
	}

	if err != nil {
		if err.Error() != "context canceled" {
			panic(err)
		}
		os.Exit(0)
	}
}
