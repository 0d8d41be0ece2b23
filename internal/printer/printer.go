package printer

import "github.com/slok/tasks/internal/model"

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintList(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintMessage(msg string) error
}
