// Package app is the client-side facade over the lifetrack daemon shared by
// the CLI and the TUI.
package app

// Options configures the top-level controller.
type Options struct {
	// ConfigPath is handed to the daemon when it is started from here.
	ConfigPath string
}

// App talks to the daemon over its UNIX socket.
type App struct {
	cfgPath string
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	return &App{
		cfgPath: opts.ConfigPath,
	}
}

// ConfigPath returns the configured config file path (if any).
func (a *App) ConfigPath() string {
	return a.cfgPath
}
