package printer

import (
	"fmt"
	"io"

	"github.com/slok/tasks/internal/model"
)

// TextPrinter prints one task per line as "[id] title (due X) [status]".
type TextPrinter struct {
	writer io.Writer
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

func (t *TextPrinter) PrintList(tasks []model.Task) error {
	for _, task := range tasks {
		if _, err := fmt.Fprintln(t.writer, task.String()); err != nil {
			return err
		}
	}
	return nil
}

func (t *TextPrinter) PrintTask(task model.Task) error {
	_, err := fmt.Fprintln(t.writer, task.String())
	return err
}

func (t *TextPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
