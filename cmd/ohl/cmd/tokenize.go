package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize an ohl source file (out of scope for this module)",
	Long: `The lexer is an external collaborator (spec §1): this module's only
input is a well-formed parse tree (§6.1), not raw source text. This
command exists for CLI-surface parity with the pack's other
subcommands but does not tokenize anything itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, _ []string) error {
		return fmt.Errorf("tokenize: out of scope for this module (the lexer is an external collaborator; see spec §1)")
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
