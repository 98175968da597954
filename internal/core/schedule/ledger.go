package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// DayKey addresses a toggle either by calendar date or by position in the
// current window.
type DayKey struct {
	Date    string
	Index   int
	ByIndex bool
}

func DateKey(date string) DayKey { return DayKey{Date: date} }

func IndexKey(i int) DayKey { return DayKey{Index: i, ByIndex: true} }

// ParseDayKey accepts "YYYY-MM-DD" or a non-negative window index.
func ParseDayKey(s string) (DayKey, error) {
	s = strings.TrimSpace(s)
	if domain.IsDateKey(s) {
		return DateKey(s), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return DayKey{}, domain.Invalid("day", domain.ErrInvalidDate)
	}
	return IndexKey(i), nil
}

func (k DayKey) String() string {
	if k.ByIndex {
		return fmt.Sprintf("#%d", k.Index)
	}
	return k.Date
}

// Resolve maps the key to a date and its window position (-1 when the date
// falls outside window).
func (k DayKey) Resolve(window []string) (string, int, error) {
	if k.ByIndex {
		if k.Index < 0 || k.Index >= len(window) {
			return "", -1, domain.Invalid("day", domain.ErrDayOutOfWindow)
		}
		return window[k.Index], k.Index, nil
	}
	day, err := domain.ParseDate(k.Date)
	if err != nil {
		return "", -1, domain.Invalid("day", domain.ErrInvalidDate)
	}
	date := domain.DateKey(day)
	for i, w := range window {
		if w == date {
			return date, i, nil
		}
	}
	return date, -1, nil
}

// Toggle records completion for one day. Both the date ledger and, when the
// date is inside window, the positional entry are written, so the two stay
// reconcilable. A day that is not due is refused.
func Toggle(h domain.Habit, key DayKey, value bool, window []string) (domain.Habit, string, error) {
	date, idx, err := key.Resolve(window)
	if err != nil {
		return h, "", err
	}
	if !DueOnKey(h, date) {
		return h, "", domain.Invalid("day", domain.ErrHabitNotDue)
	}

	next := h.Clone()
	next.CompletedByDate[date] = value
	if idx >= 0 {
		next.Completed = ResizeWindow(next.Completed, len(window))
		next.Completed[idx] = value
	}
	next.Streak = Streak(next.Completed)
	return next, date, nil
}

// ResizeWindow truncates or pads (with false) the positional array to n,
// keeping entries by position.
func ResizeWindow(completed []bool, n int) []bool {
	if n < 0 {
		n = 0
	}
	out := make([]bool, n)
	copy(out, completed)
	return out
}

// Project derives the positional array for window. Positions whose date is
// present in the ledger take the ledger value; the rest keep their legacy
// positional value.
func Project(h domain.Habit, window []string) []bool {
	out := ResizeWindow(h.Completed, len(window))
	for i, key := range window {
		if v, ok := h.CompletedByDate[key]; ok {
			out[i] = v
		}
	}
	return out
}

// Reproject returns h with Completed and Streak recomputed for window.
func Reproject(h domain.Habit, window []string) domain.Habit {
	next := h.Clone()
	next.Completed = Project(h, window)
	next.Streak = Streak(next.Completed)
	return next
}

// Rebase moves h from the window it is projected on to another one. Each
// position of from is read back as a dated entry, the ledger overrides it,
// and the result is laid out by date on to. Days known to neither are false.
func Rebase(h domain.Habit, from, to []string) domain.Habit {
	known := make(map[string]bool, len(from)+len(h.CompletedByDate))
	for i, key := range from {
		if i < len(h.Completed) {
			known[key] = h.Completed[i]
		}
	}
	for key, v := range h.CompletedByDate {
		known[key] = v
	}

	next := h.Clone()
	next.Completed = make([]bool, len(to))
	for i, key := range to {
		next.Completed[i] = known[key]
	}
	next.Streak = Streak(next.Completed)
	return next
}
