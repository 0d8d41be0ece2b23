package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/model"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     int
	status string
}

// NewStatusCommand returns the status command, that sets any status on a task.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Set the status of a task.")
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)
	c.Cmd.Arg("status", "New status (pending, done, failed).").Required().StringVar(&c.status)

	return c
}

// NewDoneCommand returns the done command, a shortcut to set the done status.
func NewDoneCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	return newFixedStatusCommand(rootCmd, app, "done", "Mark a task as done.", model.TaskStatusDone)
}

// NewFailCommand returns the fail command, a shortcut to set the failed status.
func NewFailCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	return newFixedStatusCommand(rootCmd, app, "fail", "Mark a task as failed.", model.TaskStatusFailed)
}

func newFixedStatusCommand(rootCmd *RootCommand, app *kingpin.Application, name, help string, status model.TaskStatus) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd, status: string(status)}

	c.Cmd = app.Command(name, help)
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	status, err := model.ParseTaskStatus(c.status)
	if err != nil {
		return err
	}

	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	ok, err := m.UpdateStatus(ctx, c.id, status)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %d: %w", c.id, model.ErrNotFound)
	}

	t, _ := m.Get(c.id)
	p := newPrinter(formatTable, c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Updated task: %s", t)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
