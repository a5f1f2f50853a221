package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pmboard/internal/board"
	"pmboard/internal/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, edit and delete tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task in the selected project",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		projectID, err := a.requireProject()
		if err != nil {
			return err
		}
		patch, err := taskPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if patch.Title == nil {
			return fmt.Errorf("--title is required")
		}

		task := models.Task{ProjectID: projectID, Title: *patch.Title, AssigneeID: patch.AssigneeID, DueDate: patch.DueDate}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.EstimatedHours != nil {
			task.EstimatedHours = *patch.EstimatedHours
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		created, err := a.tasks.Create(ctx, task)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Created task %s %s\n", Dim(fmt.Sprintf("#%d", created.ID)), Bold(created.Title))
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Change fields of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		patch, err := taskPatchFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		if patch.Empty() {
			return fmt.Errorf("nothing to update")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		updated, err := a.tasks.Apply(ctx, board.IntentFor(id, patch))
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Updated task %s %s [%s]\n", Dim(fmt.Sprintf("#%d", updated.ID)), Bold(updated.Title), updated.Status.Label())
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := a.tasks.Delete(ctx, id); err != nil {
			return explain(err)
		}
		fmt.Fprintf(a.out, "Deleted task #%d\n", id)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{taskCreateCmd, taskUpdateCmd} {
		f := c.Flags()
		f.String("title", "", "Task title")
		f.String("description", "", "Task description")
		f.String("status", "", "backlog, todo, in_progress, review or done")
		f.String("priority", "", "low, medium, high or critical")
		f.Int64("assignee", 0, "Assignee user id")
		f.String("due", "", "Due date (YYYY-MM-DD)")
		f.Int("estimate", 0, "Estimated hours")
	}
	taskUpdateCmd.Flags().Int("actual", 0, "Actual hours")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

// taskPatchFromFlags builds a patch from the flags the user actually set.
func taskPatchFromFlags(f *pflag.FlagSet) (models.TaskPatch, error) {
	var p models.TaskPatch
	if f.Changed("title") {
		v, _ := f.GetString("title")
		p.Title = &v
	}
	if f.Changed("description") {
		v, _ := f.GetString("description")
		p.Description = &v
	}
	if f.Changed("status") {
		v, _ := f.GetString("status")
		s := models.TaskStatus(v)
		p.Status = &s
	}
	if f.Changed("priority") {
		v, _ := f.GetString("priority")
		pr := models.TaskPriority(v)
		p.Priority = &pr
	}
	if f.Changed("assignee") {
		v, _ := f.GetInt64("assignee")
		p.AssigneeID = &v
	}
	if f.Changed("due") {
		v, _ := f.GetString("due")
		p.DueDate = &v
	}
	if f.Changed("estimate") {
		v, _ := f.GetInt("estimate")
		p.EstimatedHours = &v
	}
	if f.Lookup("actual") != nil && f.Changed("actual") {
		v, _ := f.GetInt("actual")
		p.ActualHours = &v
	}
	return p, p.Validate()
}
