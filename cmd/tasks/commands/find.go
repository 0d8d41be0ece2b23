package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type FindCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	title  string
	exact  bool
	format string
}

// NewFindCommand returns the find command.
func NewFindCommand(rootCmd *RootCommand, app *kingpin.Application) *FindCommand {
	c := &FindCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("find", "Find tasks by title (case insensitive).")
	c.Cmd.Arg("title", "Title or part of the title.").Required().StringVar(&c.title)
	c.Cmd.Flag("exact", "Match the whole title instead of a part of it.").BoolVar(&c.exact)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c FindCommand) Name() string { return c.Cmd.FullCommand() }

func (c FindCommand) Run(ctx context.Context) error {
	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	tasks := m.FindByName(c.title, c.exact)

	p := newPrinter(c.format, c.rootCmd.Stdout)
	if err := p.PrintList(tasks); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	if len(tasks) == 0 && c.format != formatJSON {
		return p.PrintMessage(fmt.Sprintf("No tasks matching %q.", c.title))
	}

	return nil
}
