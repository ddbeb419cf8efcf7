package news

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders how long before now an article was published:
// "Just now", "5h ago", "1d ago", "3d ago". A zero time gives "N/A".
func FormatTimeAgo(published, now time.Time) string {
	if published.IsZero() {
		return "N/A"
	}

	diff := now.Sub(published)
	if diff < time.Hour {
		return "Just now"
	}

	hours := int(diff / time.Hour)
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "1d ago"
	}
	return fmt.Sprintf("%dd ago", days)
}
