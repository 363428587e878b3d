package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/speakflow/internal/progress"
	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List lesson units and whether they are unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ps, err := progress.Open(cmd.Context(), progress.NewSnapshotPersister(s.SnapshotRepo()), catalog.Units(), nil)
		if err != nil {
			return err
		}

		fmt.Printf("%-4s  %-12s  %-28s  %-12s  %5s  %8s  %s\n",
			"#", "ID", "Title", "Level", "Items", "Progress", "Status")
		fmt.Println(strings.Repeat("─", 86))
		for i, u := range ps.State().Units {
			status := "open"
			if u.Locked {
				status = "locked"
			}
			fmt.Printf("%-4d  %-12s  %-28s  %-12s  %5d  %7d%%  %s\n",
				i+1, truncate(u.ID, 12), truncate(u.Title, 28), u.Level.Label(), len(u.Items), u.Progress, status)
		}
		return nil
	},
}
