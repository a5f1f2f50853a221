package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pmboard/internal/models"
)

var teamCmd = &cobra.Command{
	Use:     "team",
	Aliases: []string{"teams"},
	Short:   "Manage teams and project membership",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams, or the teams of the selected project",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if a.projectID == nil {
			teams, err := a.client.ListTeams(ctx)
			if err != nil {
				return explain(err)
			}
			printTeams(a.out, teams)
			return nil
		}

		links, err := a.client.ListProjectTeams(ctx, *a.projectID)
		if err != nil {
			return explain(err)
		}
		members, err := a.client.ListProjectMembers(ctx, *a.projectID)
		if err != nil {
			return explain(err)
		}
		if len(links) == 0 {
			fmt.Fprintln(a.out, Dim("No teams assigned."))
		}
		for _, l := range links {
			fmt.Fprintf(a.out, "%s %s\n", Dim(fmt.Sprintf("#%d", l.TeamID)), Bold(l.Name))
			for _, m := range members {
				if m.TeamID != l.TeamID {
					continue
				}
				position := ""
				if m.PositionName != nil {
					position = Dim(" " + *m.PositionName)
				}
				fmt.Fprintf(a.out, "  %s %s%s\n", m.Name, Dim("<"+m.Email+">"), position)
			}
		}
		return nil
	},
}

var teamCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		created, err := a.directory.CreateTeam(ctx, models.Team{Name: args[0], Description: description})
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Created team %s %s\n", Dim(fmt.Sprintf("#%d", created.ID)), Bold(created.Name))
		return nil
	},
}

var teamAssignCmd = &cobra.Command{
	Use:   "assign <team-id>",
	Short: "Assign a team to the selected project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		projectID, err := a.requireProject()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		link, err := a.directory.AssignTeam(ctx, projectID, teamID)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Assigned %s to project #%d\n", Bold(link.Name), projectID)
		return nil
	},
}

var teamAddMemberCmd = &cobra.Command{
	Use:   "add-member <team-id> <user-id>",
	Short: "Put a user on a team of the selected project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid team id %q", args[0])
		}
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		projectID, err := a.requireProject()
		if err != nil {
			return err
		}
		var positionID *int64
		if cmd.Flags().Changed("position") {
			v, _ := cmd.Flags().GetInt64("position")
			positionID = &v
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		member, err := a.directory.AddMember(ctx, projectID, teamID, userID, positionID)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Added user #%d to team #%d (membership #%d)\n", member.UserID, member.TeamID, member.ID)
		return nil
	},
}

var teamRemoveMemberCmd = &cobra.Command{
	Use:   "remove-member <membership-id>",
	Short: "Remove a project team membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid membership id %q", args[0])
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := a.directory.RemoveMember(ctx, id); err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Removed membership #%d\n", id)
		return nil
	},
}

func init() {
	teamCreateCmd.Flags().String("description", "", "Team description")
	teamAddMemberCmd.Flags().Int64("position", 0, "Position id")

	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamCreateCmd)
	teamCmd.AddCommand(teamAssignCmd)
	teamCmd.AddCommand(teamAddMemberCmd)
	teamCmd.AddCommand(teamRemoveMemberCmd)
}
