package sqlserver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connection verification retry policy: the server takes a moment to begin
// accepting connections after its process starts.
const (
	connectRetries = 10
	connectDelay   = 2 * time.Second
)

// DSN returns the MySQL data source name for the repository's database.
func (s *Server) DSN() string {
	cfg := s.config
	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s", cfg.user(), cfg.host(), cfg.port(), s.repo.DatabaseName())
	if cfg.Password != "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", cfg.user(), cfg.Password, cfg.host(), cfg.port(), s.repo.DatabaseName())
	}
	return dsn
}

// Connect opens a database handle to the running server and verifies it
// with a ping. Returns ErrNotRunning if the server has not been started.
func (s *Server) Connect(ctx context.Context) (*sql.DB, error) {
	if !s.Running() {
		return nil, ErrNotRunning
	}

	db, err := sql.Open("mysql", s.DSN())
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sql-server: %w", err)
	}
	return db, nil
}

// WaitForConnection retries until the server accepts a connection or the
// retry budget is exhausted.
func (s *Server) WaitForConnection() error {
	var lastErr error
	for attempt := 0; attempt < connectRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(connectDelay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectDelay)
		db, err := s.Connect(ctx)
		cancel()
		if err == nil {
			db.Close()
			s.logger.Info("verified sql-server connection")
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("sql-server not reachable after %d attempts: %w", connectRetries, lastErr)
}
