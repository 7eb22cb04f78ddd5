// Command fgs predicts protein-coding genes in raw DNA sequence using a
// 29-state profile HMM decoded with the Viterbi algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return classifyExit(err)
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fgs",
		Short:        "Predict genes in DNA sequence with a profile HMM",
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s (%s)", version, commit),
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

func classifyExit(err error) int {
	if _, ok := err.(usageError); ok {
		return ExitUsage
	}
	return ExitError
}

// usageError marks an error that stems from bad CLI input rather than a
// runtime failure, so main can report ExitUsage instead of ExitError.
type usageError struct{ error }
