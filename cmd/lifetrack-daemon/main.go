package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lifetrack/internal/daemon"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file")
	snapshot := flag.String("snapshot", "", "Write tracked records to this JSON file on shutdown (overrides config)")
	force := flag.Bool("force", false, "Stop an existing daemon before starting")
	flag.Parse()

	if *snapshot != "" {
		if err := os.Setenv("LIFETRACK_SNAPSHOT_PATH", *snapshot); err != nil {
			log.Fatalf("set snapshot path: %v", err)
		}
	}

	if daemon.IsRunning() {
		if !*force {
			pid, err := daemon.RunningPID()
			if err != nil {
				log.Fatalf("daemon appears running but pid check failed: %v", err)
			}
			log.Printf("lifetrack daemon already running (pid %d); use -force to restart", pid)
			return
		}
		log.Printf("stopping existing daemon")
		if err := daemon.StopRunningDaemon(true); err != nil {
			log.Fatalf("failed to stop running daemon: %v", err)
		}
	}

	srv, err := daemon.StartDaemon(*configPath)
	if err != nil {
		log.Fatalf("failed to start daemon: %v", err)
	}
	log.Printf("lifetrack daemon started (pid %d), socket %s", os.Getpid(), daemon.SocketPath())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Printf("stopping daemon")
	if err := srv.Close(); err != nil {
		log.Fatalf("error shutting down daemon: %v", err)
	}
}
