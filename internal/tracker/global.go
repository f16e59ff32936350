package tracker

import "sync"

var (
	defaultMu      sync.Mutex
	defaultHost    Host
	defaultOpts    []Option
	defaultTracker *Tracker
)

// SetDefaultHost installs the host and options used to build the
// process-wide tracker. It has no effect on an already built instance; call
// ShutdownDefault first to rebuild.
func SetDefaultHost(h Host, opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultHost = h
	defaultOpts = append([]Option(nil), opts...)
}

// Default returns the process-wide tracker, building it on first use.
// Without an installed host the instance is detached and logs a warning.
func Default() *Tracker {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultTracker == nil {
		defaultTracker = New(defaultHost, defaultOpts...)
		if defaultHost == nil {
			defaultTracker.log.Warn("default tracker built without a host; no objects will be observed")
		}
	}
	return defaultTracker
}

// ShutdownDefault unsubscribes and discards the process-wide tracker.
func ShutdownDefault() {
	defaultMu.Lock()
	t := defaultTracker
	defaultTracker = nil
	defaultMu.Unlock()

	if t != nil {
		t.Close()
	}
}
