package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/speakflow/internal/progress"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learner profile and practice history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ps, err := progress.Open(ctx, progress.NewSnapshotPersister(s.SnapshotRepo()), catalog.Units(), nil)
		if err != nil {
			return err
		}
		state := ps.State()
		u := state.User
		if !u.Onboarded {
			fmt.Println("No learner profile yet. Run `speakflow` to get started.")
		} else {
			fmt.Printf("Learner:   %s (%s)\n", u.Name, u.Level.Label())
			fmt.Printf("XP:        %d\n", u.XP)
			fmt.Printf("Streak:    %d day(s)\n", u.Streak)
			fmt.Printf("Goal:      %d min/day\n", u.DailyGoalMinutes)
		}

		events := s.EventRepo()
		now := time.Now()
		today, err := events.PracticeTimeSince(ctx, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))
		if err != nil {
			return err
		}
		total, err := events.PracticeTimeSince(ctx, time.Time{})
		if err != nil {
			return err
		}
		turns, err := events.ChatTurns(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Practice:  %s today, %s total\n", today.Round(time.Second), total.Round(time.Second))
		fmt.Printf("Chat:      %d turn(s)\n", turns)

		completed, err := events.CompletedLessons(ctx)
		if err != nil {
			return err
		}
		summaries, err := events.AttemptSummaries(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 && len(completed) == 0 {
			fmt.Println("\nNo lessons practiced yet.")
			return nil
		}

		titles := make(map[string]string)
		for _, unit := range state.Units {
			titles[unit.ID] = unit.Title
		}

		fmt.Println()
		fmt.Printf("%-28s  %9s  %8s  %9s  %9s\n", "Unit", "Completed", "Attempts", "Avg Score", "Offline")
		fmt.Println(strings.Repeat("─", 72))
		for _, sum := range summaries {
			title := titles[sum.UnitID]
			if title == "" {
				title = sum.UnitID
			}
			fmt.Printf("%-28s  %9d  %8d  %8.0f%%  %9d\n",
				truncate(title, 28), completed[sum.UnitID], sum.Attempts, sum.AvgScore, sum.Fallbacks)
		}
		return nil
	},
}
