package action

import (
	"fmt"
	"time"
)

// ZeroElapsed is the title of a stopped timer.
const ZeroElapsed = "00:00:00"

// FormatElapsed renders the time since start as HH:MM:SS. Hours wrap at
// 24, so a session of exactly one day reads 00:00:00 again. A nil start
// or a start in the future renders ZeroElapsed.
func FormatElapsed(start *int64, now time.Time) string {
	if start == nil {
		return ZeroElapsed
	}
	return formatMillis(now.UnixMilli() - *start)
}

func formatMillis(elapsed int64) string {
	if elapsed < 0 {
		return ZeroElapsed
	}
	total := elapsed / 1000
	seconds := total % 60
	minutes := (total / 60) % 60
	hours := (total / 3600) % 24
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
