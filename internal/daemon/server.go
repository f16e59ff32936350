package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/config"

	"google.golang.org/grpc"
)

// Server wraps the UNIX listener and the gRPC server bound to it.
type Server struct {
	ln   net.Listener
	path string
	grpc *grpc.Server
	svc  *service
	cfg  config.Config
	log  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Close stops serving, dumps a snapshot if configured, tears the heap down
// and unlinks the socket.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Server) close() error {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	} else if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			return err
		}
	}
	if s.svc != nil {
		if path := s.cfg.SnapshotPath; path != "" {
			if err := s.svc.tracker.WriteSnapshot(path); err != nil {
				s.log.Warn("tracker snapshot failed", "path", path, "err", err)
			}
		}
		s.svc.close()
	}
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return RemovePID()
}

// StartDaemon loads the config, binds the UNIX socket and serves the
// Lifetrack service in the background.
func StartDaemon(configPath string) (*Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := EnsureRuntimeDir(); err != nil {
		return nil, err
	}
	path := SocketPath()

	// If stale socket file exists but daemon is not running, remove it
	if _, err := os.Stat(path); err == nil && !IsRunning() {
		err = os.Remove(path)
		if err != nil {
			return nil, err
		}
	}

	svc, err := newService(cfg, logger)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		svc.close()
		return nil, err
	}
	err = os.Chmod(path, 0o600)
	if err != nil {
		ln.Close()
		svc.close()
		return nil, err
	}

	s := &Server{ln: ln, path: path, svc: svc, cfg: cfg, log: logger}
	s.grpc = grpc.NewServer()
	lifetrackv1.RegisterLifetrackServer(s.grpc, svc)

	if err := WritePID(os.Getpid()); err != nil {
		ln.Close()
		s.Close()
		return nil, err
	}
	go s.serve()

	logger.Info("lifetrack daemon listening",
		"socket", path,
		"root_type", cfg.RootType,
		"reserved_name", cfg.ReservedName,
		"track_types", cfg.TrackTypes,
		"track_names", cfg.TrackNames,
	)
	return s, nil
}

func (s *Server) serve() {
	if err := s.grpc.Serve(s.ln); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		s.log.Error("grpc serve stopped", "err", err)
	}
}

// StopRunningDaemon sends a termination signal to the currently running daemon if any.
func StopRunningDaemon(force bool) error {
	pid, err := RunningPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if IsRunning() {
				return fmt.Errorf("daemon is running but PID file %q is missing; stop it manually", PIDPath())
			}
			return nil
		}
		return fmt.Errorf("unable to read daemon PID: %w", err)
	}
	if pid == os.Getpid() {
		return errors.New("refusing to stop current process")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := sendSignal(proc, syscall.SIGTERM); err != nil {
		return err
	}
	if waitForShutdown(3 * time.Second) {
		return nil
	}
	if !force {
		return fmt.Errorf("daemon process %d did not exit after SIGTERM", pid)
	}
	if err := sendSignal(proc, syscall.SIGKILL); err != nil {
		return err
	}
	if waitForShutdown(2 * time.Second) {
		return nil
	}
	return fmt.Errorf("daemon process %d did not exit after SIGKILL", pid)
}

func sendSignal(proc *os.Process, sig syscall.Signal) error {
	if err := proc.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = RemovePID()
			return nil
		}
		return err
	}
	return nil
}

func waitForShutdown(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if !IsRunning() {
			_ = RemovePID()
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
