package render

import (
	"fmt"
	"time"
)

type interval struct {
	label   string
	seconds int64
}

// Coarse display buckets, largest first.
var intervals = []interval{
	{"year", 31536000},
	{"month", 2592000},
	{"day", 86400},
	{"hr", 3600},
	{"min", 60},
}

// TimeAgo formats the elapsed time since t in coarse buckets. A zero t means
// the timestamp has not resolved yet and reads as "just now".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "just now"
	}
	secs := int64(now.Sub(t).Seconds())
	for _, iv := range intervals {
		if count := secs / iv.seconds; count >= 1 {
			suffix := ""
			if count > 1 {
				suffix = "s"
			}
			return fmt.Sprintf("%d %s%s ago", count, iv.label, suffix)
		}
	}
	return "just now"
}
