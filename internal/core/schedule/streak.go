package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// Streak counts the trailing run of completed entries in the window,
// scanning from the newest day backwards.
func Streak(completed []bool) int {
	streak := 0
	for i := len(completed) - 1; i >= 0; i-- {
		if !completed[i] {
			break
		}
		streak++
	}
	return streak
}

// CompletionRate is the percentage of due days in window marked complete,
// rounded to the nearest percent. It is 0 when nothing is due.
func CompletionRate(h domain.Habit, window []string) int {
	due, done := Tally(h, window)
	if due == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(due) * 100))
}

// Tally counts due and completed-due days of window.
func Tally(h domain.Habit, window []string) (due, done int) {
	completed := Project(h, window)
	for i, key := range window {
		if !DueOnKey(h, key) {
			continue
		}
		due++
		if completed[i] {
			done++
		}
	}
	return due, done
}

// AverageStreak is the rounded mean of the habits' window streaks.
func AverageStreak(habits []domain.Habit) int {
	if len(habits) == 0 {
		return 0
	}
	sum := 0
	for _, h := range habits {
		sum += h.Streak
	}
	return int(math.Round(float64(sum) / float64(len(habits))))
}

// LedgerStreaks computes all-time streaks over consecutive calendar days of
// the date ledger. The current streak survives until the end of the day
// after the last completion.
func LedgerStreaks(byDate map[string]bool, today time.Time) (current int, longest int) {
	var days []time.Time
	for key, done := range byDate {
		if !done {
			continue
		}
		d, err := domain.ParseDate(key)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0, 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	if domain.DaysBetween(days[0], today) <= 1 {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if domain.DaysBetween(days[i+1], days[i]) != 1 {
				break
			}
			current++
		}
	}

	run := 1
	for i := 0; i < len(days)-1; i++ {
		if domain.DaysBetween(days[i+1], days[i]) == 1 {
			run++
			continue
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if run > longest {
		longest = run
	}

	return current, longest
}
