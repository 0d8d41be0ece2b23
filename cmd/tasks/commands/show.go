package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/model"
)

type ShowCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     int
	format string
}

// NewShowCommand returns the show command.
func NewShowCommand(rootCmd *RootCommand, app *kingpin.Application) *ShowCommand {
	c := &ShowCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("show", "Show a task.")
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ShowCommand) Name() string { return c.Cmd.FullCommand() }

func (c ShowCommand) Run(ctx context.Context) error {
	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	t, ok := m.Get(c.id)
	if !ok {
		return fmt.Errorf("task %d: %w", c.id, model.ErrNotFound)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintTask(t); err != nil {
		return fmt.Errorf("could not print task: %w", err)
	}

	return nil
}
