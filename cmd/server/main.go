// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	game "tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/metrics"
	"tutti-frutti-td/internal/server"
	"tutti-frutti-td/internal/utils"
)

func main() {
	configPath := flag.String("config", "config/game.yaml", "settings file")
	flag.Parse()

	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
		settings = config.DefaultSettings()
	}
	library, err := defs.LoadLibrary(settings.DataDir)
	if err != nil {
		log.Fatalf("[Main] Failed to load definitions: %v", err)
	}
	g, err := game.NewGame(library, *settings)
	if err != nil {
		log.Fatalf("[Main] Failed to start game: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	bot := game.NewAutoPlayer(g, utils.NewPRNGService(time.Now().UnixNano()), nil)
	sim := server.NewSimulation(g, bot, collector, settings.TickRate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sim.Run(ctx)

	srv := server.New(server.Config{
		Addr:     settings.Server.Addr,
		WebRoot:  settings.Server.WebRoot,
		Registry: registry,
	}, sim)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("[Main] Server error: %v", err)
	}
}
