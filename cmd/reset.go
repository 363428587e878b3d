package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved progress so the next launch starts onboarding again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Println("This deletes your profile, XP and streak. Re-run with --yes to confirm.")
			return nil
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SnapshotRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}
		fmt.Println("Progress cleared. Practice history is kept; see `speakflow stats`.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
}
