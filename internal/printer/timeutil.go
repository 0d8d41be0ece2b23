package printer

import (
	"time"

	"github.com/dustin/go-humanize"
)

// TimeAgo returns a human-readable relative time string.
// Examples: "now", "30 seconds ago", "3 hours ago", "2 weeks ago".
func TimeAgo(t time.Time) string {
	return timeAgo(time.Now().UTC(), t)
}

func timeAgo(now, t time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatTimestamp returns a formatted timestamp string in UTC.
// Format: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
