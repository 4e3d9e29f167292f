// Package sqlserver manages dolt sql-server processes and connections.
//
// A Server starts `dolt sql-server` for a repository and exposes it over
// the MySQL wire protocol. Attaching the server to the repository makes
// working-set commands (add, commit, checkout, push, pull) bounce the
// server so it never serves a stale view.
//
//	srv := sqlserver.New(repo, sqlserver.Config{Port: 3306})
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	db, err := srv.Connect(ctx)
package sqlserver
