package jsonfile

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/slok/tasks/internal/model"
)

// taskRecord is the on-disk representation of a task. Field order is kept
// stable so the file stays diff friendly.
type taskRecord struct {
	Title     string    `json:"title"`
	DueDate   *string   `json:"due_date"`
	Status    string    `json:"status"`
	CreatedAt timestamp `json:"created_at"`
	ID        int       `json:"id"`
}

func newTaskRecord(t model.Task) taskRecord {
	rec := taskRecord{
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedAt: timestamp(t.CreatedAt),
		ID:        t.ID,
	}
	if t.HasDueDate() {
		due := t.DueDate
		rec.DueDate = &due
	}

	return rec
}

func (r taskRecord) toModel(now time.Time) (model.Task, error) {
	t := model.Task{
		ID:        r.ID,
		Title:     r.Title,
		Status:    model.TaskStatus(r.Status),
		CreatedAt: time.Time(r.CreatedAt),
	}
	if r.DueDate != nil {
		t.DueDate = *r.DueDate
	}
	if t.Status == "" {
		t.Status = model.TaskStatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}

	return t, nil
}

// Accepted created_at layouts, besides numeric unix seconds. Timestamps
// without zone are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// timestamp is written as RFC3339 with nanoseconds in UTC.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var secs float64
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("timestamp must be a string or a number, got: %s", data)
		}
		whole, frac := math.Modf(secs)
		*t = timestamp(time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC())
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			*t = timestamp(parsed.UTC())
			return nil
		}
	}

	return fmt.Errorf("unknown timestamp format %q", s)
}
