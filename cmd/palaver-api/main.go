package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/palaver-dev/palaver/internal/config"
	"github.com/palaver-dev/palaver/internal/logger"
	"github.com/palaver-dev/palaver/internal/router"
	"github.com/palaver-dev/palaver/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	address := cfg.Public.Address
	if address == "" {
		address = ":8080"
	}

	logger.Log.Info("server started", "address", address)
	if err := http.ListenAndServe(address, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
