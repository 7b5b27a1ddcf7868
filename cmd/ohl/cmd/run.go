package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ohl-lang/ohl/internal/interp"
	"github.com/ohl-lang/ohl/internal/natives"
	"github.com/spf13/cobra"
)

var (
	runDebug      bool
	runNoWarnings bool
	runWarnings   bool
	runShowTime   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ohl program: lower, fold, analyze, then interpret",
	Long: `Runs the full pipeline over a parse tree: lowering, constant
folding, static analysis, and (if analysis found no errors)
interpretation. Analysis warnings are printed to stderr unless
--no-warnings is given; --debug also prints the folded semantic tree
before execution; --time reports wall-clock duration of the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDebug, "debug", false, "print the folded semantic tree before running")
	runCmd.Flags().BoolVar(&runNoWarnings, "no-warnings", false, "suppress analysis warnings")
	runCmd.Flags().BoolVar(&runWarnings, "warnings", true, "show analysis warnings")
	runCmd.Flags().BoolVar(&runShowTime, "time", false, "print elapsed wall-clock time after the run")
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]

	folded, bag, err := analyzeFile(filename)
	if err != nil {
		return err
	}

	if runWarnings && !runNoWarnings {
		for _, d := range bag.Warnings() {
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
	}
	if bag.HasErrors() {
		for _, d := range bag.Errors() {
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(bag.Errors()))
	}

	if runDebug {
		fmt.Fprintln(os.Stderr, "--- folded semantic tree ---")
		fmt.Fprintln(os.Stderr, folded.String())
		fmt.Fprintln(os.Stderr, "--- execution ---")
	}

	interpreter := interp.New(natives.NewContext())

	start := time.Now()
	runErr := interpreter.Run(folded)
	elapsed := time.Since(start)

	if runShowTime {
		fmt.Fprintf(os.Stderr, "elapsed: %s\n", elapsed)
	}

	if runErr != nil {
		return fmt.Errorf("runtime error: %w", runErr)
	}
	return nil
}
