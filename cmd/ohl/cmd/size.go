package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size [file]",
	Short: "Report byte and line counts for an ohl source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSize,
}

func init() {
	rootCmd.AddCommand(sizeCmd)
}

func runSize(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	lines := 1
	if len(content) > 0 {
		lines = strings.Count(string(content), "\n") + 1
	}

	fmt.Printf("%s: %d bytes, %d lines\n", filename, len(content), lines)
	return nil
}
