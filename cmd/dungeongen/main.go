// Package main is the entry point for dungeongen.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/armysarge/dungeongen/internal/gamedata"
	"github.com/armysarge/dungeongen/internal/telemetry"
	"github.com/armysarge/dungeongen/internal/ui"
	"github.com/armysarge/dungeongen/internal/world"
)

func main() {
	var (
		seed    = flag.Int64("seed", 0, "generation seed (0 picks one from the clock)")
		width   = flag.Int("width", world.DefaultWidth, "dungeon width in tiles")
		height  = flag.Int("height", world.DefaultHeight, "dungeon height in tiles")
		view    = flag.Bool("view", false, "open the interactive terminal viewer instead of printing")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_DUNGEONGEN_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	level := slog.LevelInfo
	if *verbose || strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Generation will run without observability")
		// Continue without telemetry - generation still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	creatures, err := gamedata.LoadCreatureRegistry()
	if err != nil {
		log.Fatalf("Failed to load creature data: %v", err)
	}

	cfg := world.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed

	generate := func(ctx context.Context) *world.Dungeon {
		d, err := world.NewDungeon(cfg, creatures, logger)
		if err != nil {
			log.Fatalf("Failed to create dungeon: %v", err)
		}
		d.Generate(ctx)
		// A fixed seed always reproduces the same dungeon, so regeneration
		// only makes sense with a fresh one.
		cfg.Seed = 0
		return d
	}

	dungeon := generate(ctx)

	if *view {
		viewer, err := ui.NewViewer()
		if err != nil {
			log.Fatalf("Failed to initialize viewer: %v", err)
		}
		if err := viewer.Run(ctx, dungeon, generate); err != nil {
			log.Fatalf("Viewer error: %v", err)
		}
		return
	}

	for _, line := range dungeon.RenderASCII() {
		fmt.Println(line)
	}
	printReport(dungeon)
}

// printReport summarizes the run on stdout after the map dump.
func printReport(d *world.Dungeon) {
	report := d.Report()
	fmt.Printf("seed=%d rooms=%d doors=%d chests=%d creatures=%d\n",
		d.Seed(), len(d.Rooms), len(d.Doors), len(d.Chests), len(d.Creatures))
	for _, k := range report.DegradedKeys {
		fmt.Printf("degraded key: %s (%s)\n", k.KeyID, k.Reason)
	}
	for _, k := range report.UnplacedKeys {
		fmt.Printf("unplaced key: %s (%s)\n", k.KeyID, k.Reason)
	}
	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_DUNGEONGEN_API_KEY")
	dataset := os.Getenv("HONEYCOMB_DUNGEONGEN_DATASET")
	if dataset == "" {
		dataset = "dungeongen" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
