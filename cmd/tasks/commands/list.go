package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasks/internal/app/list"
	"github.com/slok/tasks/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	view     string
	count    int
	page     int
	pageSize int
	format   string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List tasks.").Alias("ls")
	c.Cmd.Flag("view", "Tasks to show (pending, history, recent, all).").Short('v').Default(string(list.ViewPending)).
		EnumVar(&c.view, string(list.ViewPending), string(list.ViewHistory), string(list.ViewRecent), string(list.ViewAll))
	c.Cmd.Flag("count", "Number of tasks shown by the recent view.").Default(fmt.Sprint(list.DefaultRecentCount)).IntVar(&c.count)
	c.Cmd.Flag("page", "Page to show, starting at 1. 0 shows all the tasks.").Short('p').Default("1").IntVar(&c.page)
	c.Cmd.Flag("page-size", "Tasks per page, overrides the configuration file.").IntVar(&c.pageSize)
	addFormatFlag(c.Cmd, &c.format)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	if c.page < 0 {
		return fmt.Errorf("page can't be negative, got: %d", c.page)
	}

	pageSize := c.pageSize
	if pageSize == 0 {
		pageSize = c.rootCmd.Config.PageSize
	}
	if pageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", pageSize)
	}

	m, closeManager, err := newManager(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeManager()

	// Create list service.
	svc, err := list.NewService(list.ServiceConfig{
		Querier: m,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute list.
	tasks, err := svc.Run(ctx, list.Request{
		View:  list.View(c.view),
		Count: c.count,
	})
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	total := len(tasks)
	pages := printer.PageCount(total, pageSize)
	if c.page > 0 {
		tasks = printer.Paginate(tasks, c.page-1, pageSize)
	}

	// Print output.
	p := newPrinter(c.format, c.rootCmd.Stdout)
	if err := p.PrintList(tasks); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	// JSON output must stay a single document.
	if c.format == formatJSON {
		return nil
	}

	switch {
	case total == 0:
		return p.PrintMessage("No tasks.")
	case c.page > pages:
		return p.PrintMessage(fmt.Sprintf("Page %d is empty, there are %d pages.", c.page, pages))
	case c.page > 0 && pages > 1:
		return p.PrintMessage(fmt.Sprintf("Page %d/%d (%d tasks)", c.page, pages, total))
	}

	return nil
}
