package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	configPath := flag.String("config", "game.conf", "Path to game config file")
	levelsDir := flag.String("levels", "levels", "Path to level files directory")
	clientDir := flag.String("client", "", "Path to client directory (default: ../client)")
	dbPath := flag.String("db", "platformer.db", "Path to SQLite database (empty disables persistence)")
	flag.Parse()

	if *clientDir == "" {
		exe, _ := os.Executable()
		*clientDir = filepath.Join(filepath.Dir(exe), "..", "client")
		// Fallback for development
		if _, err := os.Stat(*clientDir); os.IsNotExist(err) {
			*clientDir = "../client"
		}
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config %s: %v", *configPath, err)
	}
	levels := NewLevelStore(*levelsDir)

	var db *DB
	var events *EventLog
	if *dbPath != "" {
		db, err = OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("open database %s: %v", *dbPath, err)
		}
		defer db.Close()
		events = NewEventLog(db)
		defer events.Close()
	}

	sessions := NewSessionManager(cfg, levels, events)
	hub := NewHub(sessions, db)
	go hub.Run()

	mux := SetupRoutes(hub, *clientDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		log.Printf("Config %s, levels from %s, start level %s", *configPath, *levelsDir, cfg.StartLevel)
		if db == nil {
			log.Printf("Persistence disabled, running without accounts or high scores")
		}
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
}
