// ABOUTME: Entry point for the taskflow CLI
// ABOUTME: Terminal dashboard and scripting client for the TaskFlow API

package main

import (
	"fmt"
	"os"

	"github.com/taskflow/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
