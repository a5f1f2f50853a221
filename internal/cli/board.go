package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pmboard/internal/board"
	"pmboard/internal/models"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the task board",
	Long: `Show the tasks grouped into backlog, todo, in progress, review and done.

With --watch the board is re-fetched on an interval and redrawn whenever
it changes, until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetDuration("watch")

		ctx, cancel := commandContext(cmd)
		err = a.tasks.Load(ctx)
		cancel()
		if err != nil {
			return explain(err)
		}
		if watch <= 0 {
			printBoard(a.out, board.Group(a.tasks.Store().Tasks()))
			return nil
		}
		return watchBoard(cmd.Context(), a, watch)
	},
}

// watchBoard polls the API and redraws on every refresh.
func watchBoard(ctx context.Context, a *app, interval time.Duration) error {
	go board.Present(ctx, a.tasks.Store(), func(columns []board.Column) {
		fmt.Fprint(a.out, "\033[H\033[2J")
		printBoard(a.out, columns)
		fmt.Fprintln(a.out, Dim("\nrefreshed "+time.Now().Format("15:04:05")))
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			if err := a.tasks.Load(reqCtx); err != nil {
				fmt.Fprintln(a.out, Red(err.Error()))
			}
			cancel()
		}
	}
}

var moveCmd = &cobra.Command{
	Use:   "move <task-id> <column|task-id>",
	Short: "Move a card to a column or onto another card",
	Long: `Drag a task onto a column (backlog, todo, in_progress, review, done) or
onto another task, in which case it joins that task's column.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		target, err := board.ParseDropTarget(args[1])
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		if err := a.tasks.Load(ctx); err != nil {
			return explain(err)
		}

		result, moved, err := drag(ctx, a.tasks, id, target)
		if err != nil {
			return explain(err)
		}
		if !moved {
			fmt.Fprintln(a.out, Dim("Nothing to move."))
			return nil
		}
		fmt.Fprintf(a.out, "Moved %s to %s\n", Bold(result.Title), BoldCyan(result.Status.Label()))
		return nil
	},
}

// drag plays one drag gesture through a dispatcher and waits for the
// request it triggers. moved is false when the drop resolves to nothing.
func drag(ctx context.Context, g *board.Gateway, taskID int64, target board.DropTarget) (models.Task, bool, error) {
	end := board.DragEnd{TaskID: taskID, Target: target}
	if _, ok := board.ResolveDrop(g.Store().Tasks(), end); !ok {
		return models.Task{}, false, nil
	}

	results := make(chan board.MutationResult, 1)
	d := board.NewDispatcher(g.Store(), g, func(r board.MutationResult) { results <- r })

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = d.Run(loopCtx) }()

	if err := d.Send(ctx, board.DragStart{TaskID: taskID}); err != nil {
		return models.Task{}, false, err
	}
	if err := d.Send(ctx, end); err != nil {
		return models.Task{}, false, err
	}

	select {
	case r := <-results:
		if r.Err != nil {
			return models.Task{}, false, r.Err
		}
		return r.Task, true, nil
	case <-ctx.Done():
		return models.Task{}, false, ctx.Err()
	}
}

func init() {
	boardCmd.Flags().Duration("watch", 0, "Redraw the board every interval")
}
