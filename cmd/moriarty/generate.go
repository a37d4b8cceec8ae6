// generate.go — the generate subcommand.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/moriarty"
	"github.com/katalvlaran/moriarty/random"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
		seedInts   []int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases from a case description",
		Long: `generate reads the YAML case description, generates a batch of test
cases, and writes them through the description's io layout (stdout by
default). A --seed flag overrides the description's seed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, format, err := loadCaseFile(configPath)
			if err != nil {
				return err
			}
			if len(seedInts) > 0 {
				seedOverride(m, seedInts)
			}

			batch, err := m.GenerateTestCases()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "generated %d case(s)\n", len(batch))

			if format == nil {
				return printBatch(os.Stdout, batch)
			}
			out := io.Writer(os.Stdout)
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return m.ExportTestCases(out, batch)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML case description (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().Int64SliceVar(&seedInts, "seed", nil, "override the description's seed integers")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func seedOverride(m *moriarty.Moriarty, ints []int64) {
	moriarty.WithSeed(random.Seed{Ints: ints})(m)
}

// printBatch renders a batch without an io layout: one "name = value" line
// per variable, cases separated by headers.
func printBatch(w io.Writer, batch []*moriarty.GeneratedCase) error {
	for _, c := range batch {
		if _, err := fmt.Fprintf(w, "--- %s\n", c.Metadata); err != nil {
			return err
		}
		for _, name := range c.Values.Names() {
			v, _ := c.Values.UnsafeGet(name)
			if _, err := fmt.Fprintf(w, "%s = %v\n", name, v); err != nil {
				return err
			}
		}
	}
	return nil
}
