// Package cmd is the command tree for the ohl CLI: print, size,
// tokenize/parse (stubs), convert, analyze, and run (§6.3). The CLI is
// an external collaborator around the pipeline, not part of the core
// design; it exists so the four in-scope stages (Lowerer, Folder,
// Analyzer, Interpreter) are reachable end-to-end from a file on disk.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ohl",
	Short: "ohl semantic pipeline: lower, fold, analyze, interpret",
	Long: `ohl drives the post-parse core of the ohl scripting language:
lowering a raw parse tree into its semantic form, folding constants,
statically analyzing it, and interpreting it.

Tokenizing and parsing .ohl source text are external collaborators not
implemented by this module (see spec §1); every other subcommand here
reads a YAML-encoded parse tree (internal/parsetree.Decode) standing in
for that external parser's output.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
