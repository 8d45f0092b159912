package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version, Commit and BuildTime are set via -ldflags at build time;
// they default to "dev"/"unknown" for a local `go build`.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "print mikino's version",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		printVersion()
	},
}

func printVersion() {
	fmt.Printf("mikino %s\n", Version)
	fmt.Printf("commit:         %s\n", Commit)
	fmt.Printf("built:          %s\n", BuildTime)
	fmt.Printf("go runtime:     %s\n", runtime.Version())
	fmt.Printf("default solver: %s\n", defaultSolverCommand)
}
