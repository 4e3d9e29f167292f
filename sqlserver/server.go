package sqlserver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/verdantdata/doltgo/dolt"
)

// Defaults for server configuration.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 3306
	DefaultUser = "root"

	// logFileName is where server output is written inside the repo.
	logFileName = "mysql_server.log"
)

// Server errors
var (
	// ErrAlreadyRunning indicates Start was called on a running server.
	ErrAlreadyRunning = errors.New("sql-server already running")

	// ErrNotRunning indicates the server is not running.
	ErrNotRunning = errors.New("sql-server not running")
)

// Config holds sql-server settings. The zero value serves the repository on
// 127.0.0.1:3306 as root with no password.
type Config struct {
	// ConfigFile passes settings as a YAML file instead of flags. When set,
	// all other fields except LogFile are ignored.
	ConfigFile string

	Host     string
	Port     int
	User     string
	Password string

	// Timeout is the connection timeout in milliseconds.
	Timeout int
	// ReadOnly disables writes.
	ReadOnly bool
	// LogLevel sets server verbosity (trace, debug, info, warning, error,
	// fatal). Defaults to info.
	LogLevel string
	// MultiDBDir serves every Dolt repository under the directory, each as
	// its own database.
	MultiDBDir string
	// NoAutoCommit disables autocommit on new connections.
	NoAutoCommit bool

	// LogFile overrides where server output is written. Defaults to
	// mysql_server.log in the repository.
	LogFile string
}

func (c Config) host() string {
	if c.Host == "" {
		return DefaultHost
	}
	return c.Host
}

func (c Config) port() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}

func (c Config) user() string {
	if c.User == "" {
		return DefaultUser
	}
	return c.User
}

// args builds the dolt sql-server argument list.
func (c Config) args() []string {
	args := []string{"sql-server"}

	if c.ConfigFile != "" {
		return append(args, "--config", c.ConfigFile)
	}

	if c.Host != "" {
		args = append(args, "--host", c.Host)
	}
	if c.Port != 0 {
		args = append(args, "--port", strconv.Itoa(c.Port))
	}
	if c.User != "" {
		args = append(args, "--user", c.User)
	}
	if c.Password != "" {
		args = append(args, "--password", c.Password)
	}
	if c.Timeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(c.Timeout))
	}
	if c.ReadOnly {
		args = append(args, "--readonly")
	}
	if c.LogLevel != "" {
		args = append(args, "--loglevel", c.LogLevel)
	}
	if c.MultiDBDir != "" {
		args = append(args, "--multi-db-dir", c.MultiDBDir)
	}
	if c.NoAutoCommit {
		args = append(args, "--no-auto-commit")
	}
	return args
}

// Server manages a dolt sql-server process for a repository.
type Server struct {
	repo   *dolt.Repo
	config Config
	logger *slog.Logger

	mu  sync.Mutex
	cmd *exec.Cmd
}

// New creates a server for the repository. The server is not started.
func New(repo *dolt.Repo, config Config) *Server {
	return &Server{
		repo:   repo,
		config: config,
		logger: slog.Default(),
	}
}

// Attach registers the server with the repository so that working-set
// commands suspend it and resume it if it was running. Call Detach (or
// pass nil) to undo.
func (s *Server) Attach() {
	s.repo.SetServerController(s)
}

// Detach removes the server from the repository.
func (s *Server) Detach() {
	s.repo.SetServerController(nil)
}

// Running reports whether the server process has been started and not
// stopped.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// Start launches the sql-server process. Output goes to the configured log
// file. Returns ErrAlreadyRunning if the server is up.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		return ErrAlreadyRunning
	}

	logPath := s.config.LogFile
	if logPath == "" {
		logPath = filepath.Join(s.repo.Dir(), logFileName)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open server log: %w", err)
	}

	cmd := exec.Command("dolt", s.config.args()...)
	cmd.Dir = s.repo.Dir()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("start sql-server: %w", err)
	}

	s.logger.Info("sql-server started",
		"host", s.config.host(),
		"port", s.config.port(),
		"log", logPath,
	)
	s.cmd = cmd
	return nil
}

// Stop kills the sql-server process. Returns ErrNotRunning if it is not
// up.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil {
		return ErrNotRunning
	}

	if err := s.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("stop sql-server: %w", err)
	}
	// Reap the process; the error is the kill signal, not a failure.
	_ = s.cmd.Wait()

	s.logger.Info("sql-server stopped")
	s.cmd = nil
	return nil
}

// Suspend implements dolt.ServerController. It stops the server if it is
// running and reports whether it was. A server that was never started is
// left stopped.
func (s *Server) Suspend() (bool, error) {
	if !s.Running() {
		return false, nil
	}
	if err := s.Stop(); err != nil {
		return false, err
	}
	return true, nil
}

// Resume implements dolt.ServerController: start with the same
// configuration and verify the connection.
func (s *Server) Resume() error {
	if err := s.Start(); err != nil {
		return err
	}
	return s.WaitForConnection()
}

// Restart bounces a running server. Returns ErrNotRunning if it is not up.
func (s *Server) Restart() error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.Resume()
}
