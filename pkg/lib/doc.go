// Package lib provides a Go SDK for managing tasks programmatically.
//
// This package allows applications to add, query, and update the same tasks
// the tasks CLI manages, without shelling out to the binary. It is useful for
// scripting, automation, and building tools on top of tasks.
//
// # Quick Start
//
// Create a client and manage a task lifecycle:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	t, err := client.AddTask(ctx, "Buy milk", "friday")
//	client.SetTaskStatus(ctx, t.ID, lib.TaskStatusDone)
//	client.RemoveTask(ctx, t.ID)
//
// # Storage
//
// Tasks are persisted after every change. Two backends are supported:
//
//   - [StorageJSON]: A JSON file, ~/.tasks/tasks.json by default.
//   - [StorageSQLite]: A SQLite database, ~/.tasks/tasks.db by default.
//
// A corrupted JSON file is backed up next to the original and the client
// starts empty, [Client.LoadWarning] returns the reason.
//
// # Queries
//
// List tasks by view, or find them by title:
//
//	pending, _ := client.ListTasks(ctx, nil)
//	recent, _ := client.ListTasks(ctx, &lib.ListTasksOpts{View: lib.ViewRecent, Count: 3})
//	found, _ := client.FindTasks(ctx, "milk", false)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Task does not exist.
//   - [ErrNotValid]: Invalid input (e.g. an empty title or an unknown status).
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. It is not
// safe to use the same storage from multiple processes at the same time.
package lib
