package main

import (
	"github.com/sirupsen/logrus"

	"workload-import-api/internal/app"
	"workload-import-api/internal/config"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	app, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize app")
	}
	defer app.Close()

	log.WithField("port", cfg.Port).Info("starting server")
	log.Fatal(app.Listen(":" + cfg.Port))
}
