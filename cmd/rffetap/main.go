// Rffetap decodes RF front-end control bus captures.
//
// It turns a two-channel logic capture (clock and data) into labeled
// protocol annotations: sequence starts, slave addresses, command
// frames, register addresses, data bytes, parity bits, and bus parks,
// with a separate warning row for protocol anomalies.
//
// Usage:
//
//	rffetap [command] [flags]
//
// See 'rffetap --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/rffetap/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rffetap",
	Short: "RFFE bus transcript decoder",
	Long: `Decode RF front-end control bus captures into labeled annotations.

rffetap reads a two-channel logic capture (clock and data), runs the
protocol state machine over it, and emits one annotation per decoded
field. Anomalies such as illegal data edges, malformed sequence starts,
and reserved command frames appear on a dedicated warning row instead of
stopping the decode.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rffetap %s (commit: %s)\n", version.Version, version.Commit)
	},
}
