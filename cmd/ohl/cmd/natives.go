package cmd

import (
	"fmt"
	"strings"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/ohl-lang/ohl/internal/natives"
)

var nativesCmd = &cobra.Command{
	Use:   "natives",
	Short: "List the namespaced native functions available to scripts",
	Run: func(cmd *cobra.Command, args []string) {
		all := natives.DefaultRegistry.All()
		names := make([]string, len(all))
		byName := make(map[string]*natives.Native, len(all))
		for i, n := range all {
			name := strings.Join(n.Path, ".")
			names[i] = name
			byName[name] = n
		}
		natural.Sort(names)
		for _, name := range names {
			n := byName[name]
			fmt.Printf("%-20s %s\n", name, n.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(nativesCmd)
}
