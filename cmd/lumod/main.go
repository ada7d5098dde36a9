// lumod serves a Lumo application over HTTP and WebSocket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumod",
		Short: "Live server for Lumo applications",
		Long: `lumod hosts a Lumo UI tree over HTTP and WebSocket.

Each connection gets its own document and reconciliation engine.
Document mutations stream to the client as binary patch frames;
client input comes back as event frames and is dispatched through
the engine's synthetic event pipeline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
