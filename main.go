package main

import (
	"log"
	"os"

	"github.com/asd22jp/takenokowar/internal/game"
	"github.com/asd22jp/takenokowar/internal/server"
	"github.com/asd22jp/takenokowar/internal/stats"
)

func main() {
	log.Println("=== STARTING TAKENOKO WAR SERVER ===")

	cfg := game.DefaultConfig()

	// Designer-editable unit stat table; the built-in one covers a missing
	// or broken file so a config typo never stops the server.
	unitsPath := os.Getenv("UNITS_FILE")
	if unitsPath == "" {
		unitsPath = "config/units.json"
	}
	if file, err := game.LoadUnitTypes(unitsPath); err != nil {
		log.Printf("Units file unusable (%v), using built-in table", err)
	} else {
		cfg.UnitTypes = file.Types
		cfg.DefaultUnitType = file.Default
		log.Printf("Loaded %d unit types from %s", len(file.Types), unitsPath)
	}

	// Win stats store; the game runs fine without it.
	statsPath := os.Getenv("STATS_DB")
	if statsPath == "" {
		statsPath = "takenoko_stats.db"
	}
	var recorder game.WinRecorder
	var source server.StatsSource
	if store, err := stats.Open(statsPath); err != nil {
		log.Printf("Stats store unavailable (%v), wins will not be recorded", err)
	} else {
		defer store.Close()
		recorder = store
		source = store
	}

	log.Println("Creating game...")
	g := game.New(cfg, recorder)
	log.Println("Game created!")

	log.Println("Starting broadcaster...")
	broadcaster := game.NewBroadcaster(g, cfg.TickInterval)
	go broadcaster.Run()

	// Get port from env (deploy platforms set this)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Println("Setting up router...")
	r := server.SetupRouter(broadcaster, g, source)
	log.Printf("Server starting at port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
