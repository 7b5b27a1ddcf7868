package cmd

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/fold"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Lower, fold, and pretty-print the resulting semantic tree",
	Long: `Like "convert", but also runs the constant folder, so literal
arithmetic and comparisons already show their folded result.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(_ *cobra.Command, args []string) error {
	start, err := lowerFile(args[0])
	if err != nil {
		return err
	}
	folded := fold.Fold(start)
	fmt.Println(folded.String())
	return nil
}
