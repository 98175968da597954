package schedule

import (
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// DueOn reports whether the habit expects a completion on day. Schedules are
// anchored on the creation date, so a frequency edit moves future due days
// without touching recorded history.
func DueOn(h domain.Habit, day time.Time) bool {
	if h.FrequencyDays <= 1 {
		return true
	}
	since := domain.DaysBetween(h.CreatedAt, day)
	if since < 0 {
		return false
	}
	return since%h.FrequencyDays == 0
}

// DueOnKey is DueOn for a YYYY-MM-DD key; unparseable keys are never due.
func DueOnKey(h domain.Habit, key string) bool {
	day, err := domain.ParseDate(key)
	if err != nil {
		return false
	}
	return DueOn(h, day)
}

// DueOnDay returns the habits due on day, keeping input order. Paused
// habits are skipped.
func DueOnDay(habits []domain.Habit, day time.Time) []domain.Habit {
	var due []domain.Habit
	for _, h := range habits {
		if h.Paused {
			continue
		}
		if DueOn(h, day) {
			due = append(due, h)
		}
	}
	return due
}

// DueDays lists the keys of window on which the habit is due.
func DueDays(h domain.Habit, window []string) []string {
	var out []string
	for _, key := range window {
		if DueOnKey(h, key) {
			out = append(out, key)
		}
	}
	return out
}
