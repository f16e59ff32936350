package main

import (
	"context"
	"log"
	"time"

	"lifetrack/internal/app"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lifetrack [command]",
	Short: "lifetrack: object liveness tracker",
	Long:  `lifetrack runs a daemon that tracks selected objects of an in-memory heap and answers whether a tracked handle is still alive.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// controllerAPI is the part of app.App the commands use.
type controllerAPI interface {
	Ping(ctx context.Context, timeout time.Duration) (string, error)
	Spawn(ctx context.Context, params app.SpawnParams) (app.SpawnResult, error)
	Destroy(ctx context.Context, params app.DestroyParams) error
	IsAlive(ctx context.Context, handle uint64, timeout time.Duration) (bool, error)
	Track(ctx context.Context, params app.TrackParams) error
	Untrack(ctx context.Context, params app.TrackParams) error
	List(ctx context.Context, timeout time.Duration) ([]app.Object, error)
	Reset(ctx context.Context, params app.ResetParams) error
	Status() (app.DaemonStatus, error)
	StopDaemon(force bool) error
	StartDaemon() (*app.DaemonHandle, error)
}

var controllerFactory = func() controllerAPI {
	return app.New(app.Options{ConfigPath: configPath})
}

func controller() controllerAPI {
	return controllerFactory()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
