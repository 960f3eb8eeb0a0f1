package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/errdoctor/internal/profile"
	"github.com/abhisek/errdoctor/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your saved platform profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save your OS, package manager, and editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		osFlag, _ := cmd.Flags().GetString("os")
		pmFlag, _ := cmd.Flags().GetString("pm")
		editorFlag, _ := cmd.Flags().GetString("editor")
		if osFlag == "" && pmFlag == "" && editorFlag == "" {
			return fmt.Errorf("nothing to set; pass at least one of --os, --pm, --editor")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		repo := s.ProfileRepo()

		// Overlay onto whatever is already saved.
		p := profile.Default()
		if saved, err := repo.Load(ctx); err == nil && saved != nil {
			p = p.With(saved.OS, saved.PM, saved.Editor)
		}
		p = p.With(osFlag, pmFlag, editorFlag)

		if err := repo.Save(ctx, &store.SavedProfile{
			OS:        string(p.OS),
			PM:        string(p.PackageManager),
			Editor:    string(p.Editor),
			UpdatedAt: time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}

		color.New(color.FgGreen).Println("Profile saved.")
		printProfile(p)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := profile.Default()
		saved, err := s.ProfileRepo().Load(context.Background())
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if saved != nil {
			p = p.With(saved.OS, saved.PM, saved.Editor)
		} else {
			color.New(color.Faint).Println("No saved profile; showing defaults.")
		}
		printProfile(p)
		return nil
	},
}

func printProfile(p profile.Profile) {
	fmt.Printf("  OS:              %s\n", p.OS)
	fmt.Printf("  Package manager: %s\n", p.PackageManager)
	fmt.Printf("  Editor:          %s\n", p.Editor)
}

func init() {
	profileSetCmd.Flags().String("os", "", "Operating system (linux, windows, macos)")
	profileSetCmd.Flags().String("pm", "", "Package manager (pip, conda, poetry)")
	profileSetCmd.Flags().String("editor", "", "Editor (vscode, pycharm, sublime, vim, jupyter)")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
}
