// Command cmapdemo is a small CLI for exercising the cmap engine:
// build a mesh, then report its cell counts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmapdemo",
	Short: "Build and inspect small combinatorial maps",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
