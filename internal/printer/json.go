package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/tasks/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskOutput represents a task in the JSON output.
type taskOutput struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	DueDate   *string   `json:"due_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func newTaskOutput(t model.Task) taskOutput {
	out := taskOutput{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.UTC(),
	}
	if t.HasDueDate() {
		due := t.DueDate
		out.DueDate = &due
	}
	return out
}

// PrintList prints tasks as a JSON array.
func (j *JSONPrinter) PrintList(tasks []model.Task) error {
	items := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		items[i] = newTaskOutput(t)
	}

	return j.encode(items)
}

// PrintTask prints a single task as a JSON object.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(newTaskOutput(task))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
