// validate.go — the validate subcommand.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var (
		configPath string
		inputPath  string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate externally supplied test cases",
		Long: `validate reads the YAML case description and checks an input stream
(stdin by default) against its variables: layout per the io section, every
value inside its constraints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, format, err := loadCaseFile(configPath)
			if err != nil {
				return err
			}
			if format == nil {
				return fmt.Errorf("%s has no io section; nothing to parse against", configPath)
			}

			in := io.Reader(os.Stdin)
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			res, err := m.ImportTestCases(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "ok: %d case(s) valid\n", len(res.Cases))
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML case description (required)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file (default stdin)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
