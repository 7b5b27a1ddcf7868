package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an ohl source file (out of scope for this module)",
	Long: `The Pratt parser that turns tokens into a raw parse tree is an
external collaborator (spec §1). Feed a YAML-encoded parse tree
directly to "convert", "analyze", or "run" instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return fmt.Errorf("parse: out of scope for this module (the parser is an external collaborator; see spec §1)")
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
