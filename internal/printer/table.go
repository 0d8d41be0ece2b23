package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/tasks/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints tasks in a table format.
func (t *TablePrinter) PrintList(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tSTATUS\tCREATED")

	// Print rows
	for _, task := range tasks {
		due := task.DueDate
		if !task.HasDueDate() {
			due = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", task.ID, task.Title, due, task.Status, TimeAgo(task.CreatedAt))
	}

	return nil
}

// PrintTask prints detailed task information.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:         %d\n", task.ID)
	fmt.Fprintf(t.writer, "Title:      %s\n", task.Title)
	if task.HasDueDate() {
		fmt.Fprintf(t.writer, "Due:        %s\n", task.DueDate)
	}
	fmt.Fprintf(t.writer, "Status:     %s\n", task.Status)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(task.CreatedAt))

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
