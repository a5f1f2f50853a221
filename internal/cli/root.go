package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverFlag  string
	projectFlag int64
	verbose     bool
	rootCmd     *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "boardctl",
		Short: "boardctl - project board client",
		Long: `boardctl talks to a pmboard server.

It shows the task board of a project, moves cards between columns and
records what changed in the activity feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server URL (default from config or http://localhost:3001)")
	rootCmd.PersistentFlags().Int64VarP(&projectFlag, "project", "p", 0, "Project id to work on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(activityCmd)

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, Red("Error:"), err)
		return err
	}
	return nil
}
