package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pmboard/internal/activity"
	"pmboard/internal/board"
	"pmboard/internal/client"
)

const requestTimeout = 30 * time.Second

// app holds the client-side pipeline for one invocation.
type app struct {
	out       io.Writer
	server    string
	client    *client.Client
	tasks     *board.Gateway
	directory *board.Directory
	projectID *int64
}

// newApp wires the API client, the activity logger and the task gateway
// from config, the saved session and the persistent flags.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	session, err := loadSession()
	if err != nil {
		return nil, err
	}

	server := cfg.Server
	if session.Server != "" {
		server = session.Server
	}
	if serverFlag != "" {
		server = serverFlag
	}
	c := client.New(server, client.WithToken(session.Token))

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	recorder := activity.NewLogger(c, logger)
	if session.Token != "" && session.User.ID != 0 {
		recorder.SetActor(&activity.Actor{ID: session.User.ID, Name: session.User.Name})
	}

	var projectID *int64
	switch {
	case projectFlag != 0:
		projectID = &projectFlag
	case cfg.Project != 0:
		id := cfg.Project
		projectID = &id
	}

	tasks := board.NewGateway(c, board.NewTaskStore(), recorder, projectID)
	return &app{
		out:       cmd.OutOrStdout(),
		server:    server,
		client:    c,
		tasks:     tasks,
		directory: board.NewDirectory(c, recorder, tasks),
		projectID: projectID,
	}, nil
}

func (a *app) requireProject() (int64, error) {
	if a.projectID == nil {
		return 0, errors.New("no project selected, pass --project or set project in config.yaml")
	}
	return *a.projectID, nil
}

// commandContext bounds a command's requests.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, requestTimeout)
}

// explain adds a hint on what to run next to auth and lookup failures.
func explain(err error) error {
	switch {
	case client.IsUnauthorized(err):
		return fmt.Errorf("%w (run `boardctl login`)", err)
	case client.IsNotFound(err):
		return fmt.Errorf("%w (check the id with a `boardctl ... list` command)", err)
	}
	return err
}
