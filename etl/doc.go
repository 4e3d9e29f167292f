// Package etl moves tabular data into Dolt repositories.
//
// A TableWriter produces rows for one table; LoadToDolt runs a set of
// writers against a repository, stages the written tables, and commits.
// Loads can target a branch, which must already exist — branch creation is
// an explicit step, never a side effect.
//
//	writer := etl.NewRowsWriter("players", []string{"name"}, dolt.ImportModeCreate, rows)
//	runID, err := etl.LoadToDolt(ctx, repo, []etl.TableWriter{writer}, etl.LoadOptions{
//	    Commit:  true,
//	    Message: "Loaded players",
//	})
package etl
