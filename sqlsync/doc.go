// Package sqlsync moves table data between Dolt repositories and
// relational databases.
//
// A sync pairs a TableReader with a TableWriter over a table mapping:
//
//	mapping := sqlsync.IdentityMapping("players", "rankings")
//	err := sqlsync.SyncToDolt(ctx,
//		sqlsync.SQLReader(db, sqlsync.MySQLDialect{}),
//		sqlsync.DoltWriter(repo, dolt.ImportModeReplace),
//		mapping)
//
// Readers and writers exist for Dolt repositories and for any
// database/sql connection through a Dialect. Dialects are provided
// for MySQL, PostgreSQL, and SQLite.
package sqlsync
