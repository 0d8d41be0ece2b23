package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/model"
)

type EditCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id       int
	title    string
	dueDate  string
	clearDue bool
}

// NewEditCommand returns the edit command.
func NewEditCommand(rootCmd *RootCommand, app *kingpin.Application) *EditCommand {
	c := &EditCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("edit", "Edit the title and due date of a task.")
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)
	c.Cmd.Arg("title", "New task title.").Required().StringVar(&c.title)
	c.Cmd.Flag("due", "New due date, the current one is kept if missing.").Short('d').StringVar(&c.dueDate)
	c.Cmd.Flag("clear-due", "Remove the due date.").BoolVar(&c.clearDue)

	return c
}

func (c EditCommand) Name() string { return c.Cmd.FullCommand() }

func (c EditCommand) Run(ctx context.Context) error {
	due, err := dueDateUpdate(c.dueDate, c.clearDue)
	if err != nil {
		return err
	}

	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	ok, err := m.Edit(ctx, c.id, c.title, due)
	if err != nil {
		return fmt.Errorf("could not edit task: %w", err)
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

func dueDateUpdate(dueDate string, clearDue bool) (model.DueDateUpdate, error) {
	switch {
	case clearDue && dueDate != "":
		return model.DueDateUpdate{}, fmt.Errorf("--due and --clear-due can't be used together")
	case clearDue:
		return model.ClearDueDate(), nil
	case dueDate != "":
		return model.SetDueDate(dueDate), nil
	default:
		return model.KeepDueDate(), nil
	}
}
