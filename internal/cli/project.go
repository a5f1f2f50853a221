package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pmboard/internal/models"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		projects, err := a.client.ListProjects(ctx)
		if err != nil {
			return explain(err)
		}
		printProjects(a.out, projects)
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := projectPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		project := models.Project{Name: args[0], StartDate: patch.StartDate, EndDate: patch.EndDate}
		if patch.Description != nil {
			project.Description = *patch.Description
		}
		if patch.Status != nil {
			project.Status = *patch.Status
		}
		if patch.Progress != nil {
			project.Progress = *patch.Progress
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		created, err := a.directory.CreateProject(ctx, project)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Created project %s %s\n", Dim(fmt.Sprintf("#%d", created.ID)), Bold(created.Name))
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Change fields of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		patch, err := projectPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if len(patch.Fields()) == 0 {
			return fmt.Errorf("nothing to update")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		updated, err := a.directory.UpdateProject(ctx, id, patch)
		if err != nil {
			return explain(err)
		}
		printProjects(a.out, []models.Project{updated})
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := a.directory.DeleteProject(ctx, id); err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Deleted project #%d\n", id)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{projectCreateCmd, projectUpdateCmd} {
		f := c.Flags()
		f.String("description", "", "Project description")
		f.String("status", "", "planning, active, on_hold or completed")
		f.Int("progress", 0, "Progress from 0 to 100")
		f.String("start", "", "Start date (YYYY-MM-DD)")
		f.String("end", "", "End date (YYYY-MM-DD)")
	}
	projectUpdateCmd.Flags().String("name", "", "Project name")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func projectPatchFromFlags(f *pflag.FlagSet) (models.ProjectPatch, error) {
	var p models.ProjectPatch
	if f.Lookup("name") != nil && f.Changed("name") {
		v, _ := f.GetString("name")
		p.Name = &v
	}
	if f.Changed("description") {
		v, _ := f.GetString("description")
		p.Description = &v
	}
	if f.Changed("status") {
		v, _ := f.GetString("status")
		s := models.ProjectStatus(v)
		p.Status = &s
	}
	if f.Changed("progress") {
		v, _ := f.GetInt("progress")
		p.Progress = &v
	}
	if f.Changed("start") {
		v, _ := f.GetString("start")
		p.StartDate = &v
	}
	if f.Changed("end") {
		v, _ := f.GetString("end")
		p.EndDate = &v
	}
	return p, p.Validate()
}
