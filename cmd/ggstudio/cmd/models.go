package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gg-studio/ai"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available Gemini models",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if modelsJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(ai.Groups())
		}
		for _, g := range ai.Groups() {
			fmt.Fprintf(w, "%s\n", g.Name)
			for _, m := range g.Models {
				marker := " "
				if m.ID == ai.DefaultModel {
					marker = "*"
				}
				fmt.Fprintf(w, " %s %-24s %s\n", marker, m.ID, m.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "output as JSON")
}
