// Command doltgo is a CLI over the doltgo library: repository
// inspection, SQL, server control, data loads, syncs, and release
// announcements.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
