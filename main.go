// Command pmresolve resolves a set of package changes against configured
// local and sync catalogues.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pmresolve/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "pmresolve",
	Short: "Package-dependency resolver core",
	Long:  `pmresolve builds a dependency graph rooted at requested package changes, resolves inter-package conflicts, and prints the ordered set of packages to install.`,
}

func init() {
	rootCmd.AddCommand(cmd.ResolveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
