package main

import (
	"fmt"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/capture"
	"github.com/THRIPURASRI/voicenudge-cli/internal/client"
	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/internal/service"
	"github.com/THRIPURASRI/voicenudge-cli/internal/store"
	"github.com/THRIPURASRI/voicenudge-cli/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("voicenudge-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	// The local identity cache is a convenience; a broken local database
	// must not keep the user from logging in.
	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Warn().Err(err).Msg("local storage unavailable, continuing without email prefill")
		localStorage = nil
	}

	var opener capture.DeviceOpener
	malgoOpener, err := capture.NewMalgoOpener()
	if err != nil {
		log.Warn().Err(err).Msg("audio backend unavailable, recording disabled")
		opener = capture.UnavailableOpener{Err: err}
	} else {
		opener = malgoOpener
		defer malgoOpener.Close()
	}
	engine := capture.NewEngine(opener, capture.NewOtoPreviewPlayer(), cfg.Capture, log)

	services := service.NewClientServices(serverAdapter, localStorage, log)
	ui := tui.New(services, engine, cfg, log)

	app, err := client.NewApp(services, ui, engine, localStorage, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
