package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Lower a parse tree and print the resulting semantic tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(_ *cobra.Command, args []string) error {
	start, err := lowerFile(args[0])
	if err != nil {
		return err
	}
	fmt.Println(start.String())
	return nil
}
