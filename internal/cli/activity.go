package cli

import (
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		activities, err := a.client.ListActivities(ctx, limit)
		if err != nil {
			return explain(err)
		}
		printActivities(a.out, activities)
		return nil
	},
}

func init() {
	activityCmd.Flags().IntP("limit", "n", 20, "Number of entries")
}
