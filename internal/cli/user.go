package cli

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Look up accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts with the ids used by --assignee and team add-member",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			return explain(err)
		}
		printUsers(a.out, users)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
}
