// Package doltgo provides a Go client for Dolt, the version-controlled
// MySQL-compatible database.
//
// The package is organized into subpackages by domain:
//
//   - dolt: Dolt repository operations via the dolt CLI (status, commits,
//     branches, remotes, tables, schemas, credentials)
//   - sqlserver: dolt sql-server lifecycle and MySQL-protocol connections
//   - etl: table loaders for moving tabular data into Dolt
//   - sqlsync: syncing tables between Dolt and relational databases
//   - dolthub: DoltHub API client (repository metadata, SQL-over-HTTP)
//   - creds: Dolt remote credentials (JWK key files, auth tokens)
//   - remotes: remote URL parsing and backend preflight checks
//   - notify: notification services (Slack, Discord, webhook)
//   - config: hierarchical configuration resolution
//   - version: build identity and release tag handling
//   - testutil: test utilities and fixtures
//
// # Quick Start
//
//	import (
//	    "github.com/verdantdata/doltgo/dolt"
//	    "github.com/verdantdata/doltgo/etl"
//	)
//
//	// Open an existing Dolt repository
//	repo, _ := dolt.NewRepo("/path/to/repo")
//
//	// Inspect it
//	status, _ := repo.Status()
//	commits, _ := repo.Log(10)
//
//	// Load data into it
//	writer := etl.NewRowsWriter("players", []string{"name"}, dolt.ImportModeCreate, produceRows)
//	etl.LoadToDolt(ctx, repo, []etl.TableWriter{writer}, etl.LoadOptions{
//	    Commit:  true,
//	    Message: "Loaded players",
//	})
//
// See individual package documentation for detailed usage.
package doltgo
