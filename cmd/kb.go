package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the knowledge base",
}

var kbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base summary",
	Run: func(cmd *cobra.Command, args []string) {
		stats := loadCollection(cmd).Statistics()
		fmt.Printf("Version:    %s\n", stats.Version)
		fmt.Printf("Templates:  %d\n", stats.Templates)
		fmt.Printf("Categories: %s\n", strings.Join(stats.Categories, ", "))
		fmt.Printf("Severities: %s\n", strings.Join(stats.Severities, ", "))
	},
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge base templates",
	Run: func(cmd *cobra.Command, args []string) {
		col := loadCollection(cmd)
		if len(col.Templates) == 0 {
			fmt.Println("No templates loaded.")
			return
		}

		fmt.Printf("%-24s  %-24s  %-12s  %s\n", "ID", "Error type", "Category", "Patterns")
		fmt.Println(strings.Repeat("─", 80))
		for _, t := range col.Templates {
			fmt.Printf("%-24s  %-24s  %-12s  %d\n", t.ID, t.ErrorType, t.Category, len(t.Patterns))
		}
	},
}

func init() {
	kbCmd.AddCommand(kbStatsCmd)
	kbCmd.AddCommand(kbListCmd)
}
