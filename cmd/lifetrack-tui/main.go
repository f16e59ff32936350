package main

import (
	"flag"
	"log"

	"lifetrack/internal/app"
	"lifetrack/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file used when starting the daemon from the UI")
	flag.Parse()

	if err := tui.Run(app.New(app.Options{ConfigPath: *configPath})); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}
