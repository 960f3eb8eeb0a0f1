package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/errdoctor/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update errdoctor to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version},
			func(p selfupdate.UpdateProgress) {
				if p.Stage == "done" {
					color.Green(p.Message)
					return
				}
				fmt.Println(p.Message)
			})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			color.Yellow("This is a development build; install a release build to use update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Printf("errdoctor %s is up to date.\n", version)
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nTry running: sudo errdoctor update", err)
		default:
			return err
		}
	},
}
