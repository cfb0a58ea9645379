// Command ewskit is the Exchange Web Services client CLI.
package main

import (
	"github.com/ewskit/ewskit/pkg/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = buildDate
	cli.Execute()
}
