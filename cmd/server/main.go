// Command carcassonne runs the relay server or plays a round from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carcassonne",
	Short: "Carcassonne relay server and terminal client",
	Long: `carcassonne relays the turns of networked Carcassonne rounds between
players and lets you play from a terminal, hot-seat or over the network.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(playCmd)
}
