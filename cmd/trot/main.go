// Command trot is a thin cobra-based driver over the trot package: it
// exists to exercise the library end to end from the command line, not
// to be part of Trot's data model itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	memLimit int64
	nodeSize int
)

var rootCmd = &cobra.Command{
	Use:     "trot",
	Short:   "Drive the Trot embeddable data engine from the command line",
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&memLimit, "mem-limit", 0, "Program memory limit in bytes (0 = unlimited)")
	rootCmd.PersistentFlags().IntVar(&nodeSize, "node-size", 64, "Node chunk capacity override")
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newCheckCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
