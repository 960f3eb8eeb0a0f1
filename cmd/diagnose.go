package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/errdoctor/internal/engine"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <error description>",
	Short: "Diagnose an error from its description",
	Long: "Diagnose takes a free-text error description (the message, the traceback\n" +
		"line, or just what you saw) and produces a ranked diagnosis with solutions\n" +
		"for your platform.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		errorText := strings.Join(args, " ")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		p := loadProfile(ctx, cmd, s.ProfileRepo())
		eng := buildEngine(ctx, cmd, s)

		asJSON, _ := cmd.Flags().GetBool("json")

		var spin *spinner.Spinner
		if !asJSON {
			spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr), spinner.WithSuffix(" diagnosing..."))
			spin.Start()
		}
		res := eng.Resolve(ctx, errorText, p)
		if spin != nil {
			spin.Stop()
		}

		if asJSON {
			return printJSON(res)
		}
		printHuman(res)
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().String("os", "", "Operating system (linux, windows, macos)")
	diagnoseCmd.Flags().String("pm", "", "Package manager (pip, conda, poetry)")
	diagnoseCmd.Flags().String("editor", "", "Editor (vscode, pycharm, sublime, vim, jupyter)")
	diagnoseCmd.Flags().Bool("json", false, "Print the raw diagnosis as JSON")
}

func printJSON(res engine.Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printHuman(res engine.Result) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	fmt.Println()
	if res.Rejected() {
		red.Println("Cannot diagnose yet")
		fmt.Printf("  %s.\n", res.Rejection)
		return
	}

	d := res.Diagnosis
	cyan.Printf("%s\n", d.CardTitle)
	dim.Printf("  source: %s   confidence: %.0f%%\n\n", d.Source, d.Confidence*100)

	green.Println("Solutions:")
	for i, s := range d.Solutions {
		fmt.Printf("  %d. %s\n", i+1, s)
	}

	if d.Explanation != "" {
		fmt.Println()
		cyan.Println("Why this happens:")
		fmt.Printf("  %s\n", d.Explanation)
	}
	if len(d.CommonCauses) > 0 {
		fmt.Println()
		cyan.Println("Common causes:")
		for _, c := range d.CommonCauses {
			fmt.Printf("  - %s\n", c)
		}
	}
	if len(d.RelatedErrors) > 0 {
		fmt.Println()
		dim.Printf("Related: %s\n", strings.Join(d.RelatedErrors, ", "))
	}
}
