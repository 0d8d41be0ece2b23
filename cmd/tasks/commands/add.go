package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type AddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title   string
	dueDate string
	format  string
}

// NewAddCommand returns the add command.
func NewAddCommand(rootCmd *RootCommand, app *kingpin.Application) *AddCommand {
	c := &AddCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("add", "Add a new task.")
	c.Cmd.Arg("title", "Task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("due", "Due date (free form, e.g. 2025-01-01, friday).").Short('d').StringVar(&c.dueDate)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c AddCommand) Name() string { return c.Cmd.FullCommand() }

func (c AddCommand) Run(ctx context.Context) (err error) {
	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	t, err := m.Add(ctx, c.title, c.dueDate)
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}

	p := newPrinter(c.format, c.rootCmd.Stdout)
	if c.format == formatJSON {
		return p.PrintTask(t)
	}

	if err := p.PrintMessage(fmt.Sprintf("Added task: %s", t)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
