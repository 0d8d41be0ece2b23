package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/model"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id int
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a task.")
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	ok, err := m.Remove(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}
	if !ok {
		return fmt.Errorf("task %d: %w", c.id, model.ErrNotFound)
	}

	p := newPrinter(formatTable, c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Removed task: %d", c.id)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
