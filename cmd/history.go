package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent diagnoses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.HistoryRepo().Recent(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No diagnoses yet.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %-14s  %-5s  %s\n",
			"When", "Error type", "Source", "Conf", "Description")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range entries {
			text := e.ErrorText
			if len(text) > 34 {
				text = text[:31] + "..."
			}
			fmt.Printf("%-19s  %-24s  %-14s  %4.0f%%  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.ErrorType, e.Source, e.Confidence*100, text)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
}
