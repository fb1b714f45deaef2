package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a track position as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	total := int(max(d, 0) / time.Second)
	h, m, s := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatElapsed formats scene time as m:ss.t. Minutes keep counting past
// the hour since a scene clock never needs one.
func FormatElapsed(d time.Duration) string {
	tenths := int(max(d, 0) / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}
