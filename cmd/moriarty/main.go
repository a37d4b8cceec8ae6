// Command moriarty generates and validates algorithmic-problem test cases
// from a YAML description.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "moriarty",
		Short: "Generate and validate test cases from a declarative description",
		Long: `moriarty reads a YAML description of constraint variables, an optional
token-stream layout, and generator settings, then generates reproducible
test cases or validates externally supplied ones.`,
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "moriarty:", err)
		os.Exit(1)
	}
}
