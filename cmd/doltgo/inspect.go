package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdantdata/doltgo/dolt"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working set status",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		status, err := repo.Status()
		if err != nil {
			return err
		}

		branch, err := repo.CurrentBranch()
		if err != nil {
			return err
		}
		fmt.Printf("On branch %s\n", branch)

		if status.IsClean {
			fmt.Println("nothing to commit, working tree clean")
			return nil
		}
		for _, table := range sortedKeys(status.AddedTables) {
			fmt.Printf("  new table:  %s\n", table)
		}
		for _, table := range sortedKeys(status.ModifiedTables) {
			fmt.Printf("  modified:   %s\n", table)
		}
		return nil
	},
}

var logCount int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		commits, err := repo.Log(logCount)
		if err != nil {
			return err
		}
		for _, c := range commits {
			fmt.Printf("%s  %s  %s\n",
				c.Hash[:min(12, len(c.Hash))],
				c.Date.Format("2006-01-02"),
				c.Author)
		}
		return nil
	},
}

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "List branches",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		active, all, err := repo.Branches()
		if err != nil {
			return err
		}
		for _, b := range all {
			marker := "  "
			if b.Name == active.Name {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, b.Name)
		}
		return nil
	},
}

var sqlFormat string

var sqlCmd = &cobra.Command{
	Use:   "sql [query]",
	Short: "Run a SQL query against the repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}

		if sqlFormat == "csv" {
			data, err := repo.QueryRows(args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(data.Columns, ","))
			for _, row := range data.Rows {
				fmt.Println(strings.Join(row, ","))
			}
			return nil
		}

		out, err := repo.SQL(dolt.SQLOptions{Query: args[0]})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logCount, "number", "n", 10, "Number of commits to show")
	sqlCmd.Flags().StringVar(&sqlFormat, "format", "", "Result format (csv)")
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
