package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pmboard/internal/board"
	"pmboard/internal/models"
)

var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	BoldCyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen  = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
)

// columnHeader colors a column title by how far along the work is.
func columnHeader(status models.TaskStatus, count int) string {
	title := fmt.Sprintf("%s (%d)", strings.ToUpper(status.Label()), count)
	switch status {
	case models.StatusDone:
		return BoldGreen(title)
	case models.StatusInProgress, models.StatusReview:
		return BoldYellow(title)
	default:
		return BoldCyan(title)
	}
}

func priorityTag(p models.TaskPriority) string {
	switch p {
	case models.PriorityCritical:
		return Red("!!")
	case models.PriorityHigh:
		return Yellow("! ")
	case models.PriorityLow:
		return Dim("- ")
	default:
		return "  "
	}
}

// printBoard writes the columns one after another.
func printBoard(w io.Writer, columns []board.Column) {
	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, columnHeader(col.Status, len(col.Tasks)))
		if len(col.Tasks) == 0 {
			fmt.Fprintln(w, Dim("  (empty)"))
			continue
		}
		for _, t := range col.Tasks {
			line := fmt.Sprintf("  %s %s %s", priorityTag(t.Priority), Dim(fmt.Sprintf("#%d", t.ID)), t.Title)
			if t.AssigneeID != nil {
				line += Dim(fmt.Sprintf(" @%d", *t.AssigneeID))
			}
			if t.DueDate != nil && *t.DueDate != "" {
				line += Dim(" due " + *t.DueDate)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func printActivities(w io.Writer, activities []models.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(w, Dim("No activity yet."))
		return
	}
	for _, a := range activities {
		who := a.UserName
		if who == "" {
			who = "someone"
		}
		fmt.Fprintf(w, "%s  %s %s\n", Dim(a.Timestamp.Local().Format("2006-01-02 15:04")), Bold(who), a.Message)
	}
}

func printProjects(w io.Writer, projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, Dim("No projects."))
		return
	}
	for _, p := range projects {
		fmt.Fprintf(w, "%s %s %s %s\n", Dim(fmt.Sprintf("#%d", p.ID)), Bold(p.Name), Cyan(string(p.Status)), progressBar(p.Progress))
	}
}

// progressBar renders progress out of 100 as ten cells.
func progressBar(progress int) string {
	filled := progress / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + Green(strings.Repeat("#", filled)) + strings.Repeat(".", 10-filled) + fmt.Sprintf("] %d%%", progress)
}

func printTeams(w io.Writer, teams []models.Team) {
	if len(teams) == 0 {
		fmt.Fprintln(w, Dim("No teams."))
		return
	}
	for _, t := range teams {
		fmt.Fprintf(w, "%s %s %s\n", Dim(fmt.Sprintf("#%d", t.ID)), Bold(t.Name), Dim(fmt.Sprintf("%d members", len(t.MemberIDs))))
	}
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, Dim("No users."))
		return
	}
	for _, u := range users {
		fmt.Fprintf(w, "%s %s %s\n", Dim(fmt.Sprintf("#%d", u.ID)), Bold(u.Name), Dim(u.Email))
	}
}
