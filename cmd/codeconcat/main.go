// Command codeconcat walks a project tree and emits a single annotated
// context artifact in Markdown, JSON, or XML.
package main

import (
	"fmt"
	"os"

	"github.com/codeconcat/codeconcat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "codeconcat: %v\n", err)
		os.Exit(1)
	}
}
