package window

import (
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

type Span string

const (
	SpanWeek   Span = "week"
	SpanMonth  Span = "month"
	SpanYear   Span = "year"
	SpanAll    Span = "all"
	SpanCustom Span = "custom"
)

// ParseSpan maps user input to a Span. Unknown values become SpanAll, which
// filters nothing.
func ParseSpan(s string) Span {
	switch sp := Span(strings.ToLower(strings.TrimSpace(s))); sp {
	case SpanWeek, SpanMonth, SpanYear, SpanCustom:
		return sp
	default:
		return SpanAll
	}
}

// Navigable reports whether the span supports offset windows.
func (s Span) Navigable() bool {
	return s == SpanWeek || s == SpanMonth
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := domain.Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// InSpan reports whether date falls in the current span relative to now.
// Dates are compared as calendar days.
func InSpan(date time.Time, span Span, now time.Time) bool {
	d := domain.Day(date)
	n := domain.Day(now)
	switch span {
	case SpanWeek:
		start := StartOfWeek(n)
		return !d.Before(start) && !d.After(start.AddDate(0, 0, 6))
	case SpanMonth:
		return d.Year() == n.Year() && d.Month() == n.Month()
	case SpanYear:
		return d.Year() == n.Year()
	default:
		return true
	}
}

// FilterBySpan keeps the items whose date falls in the current span.
// SpanAll, SpanCustom and unknown spans pass everything through; use
// FilterByRange for explicit bounds.
func FilterBySpan[T any](items []T, span Span, now time.Time, dateOf func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if InSpan(dateOf(it), span, now) {
			out = append(out, it)
		}
	}
	return out
}

// FilterByRange keeps items dated within [from, to], both inclusive. A zero
// bound is open.
func FilterByRange[T any](items []T, from, to time.Time, dateOf func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		d := domain.Day(dateOf(it))
		if !from.IsZero() && d.Before(domain.Day(from)) {
			continue
		}
		if !to.IsZero() && d.After(domain.Day(to)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Filter applies a span, or the explicit range when span is SpanCustom.
func Filter[T any](items []T, q Query, now time.Time, dateOf func(T) time.Time) []T {
	if q.Span == SpanCustom {
		return FilterByRange(items, q.From, q.To, dateOf)
	}
	return FilterBySpan(items, q.Span, now, dateOf)
}

// Query selects a span; From and To only apply to SpanCustom.
type Query struct {
	Span Span
	From time.Time
	To   time.Time
}

func ExpenseDate(e domain.Expense) time.Time           { return e.Date }
func TimerSessionDate(s domain.TimerSession) time.Time { return s.StartedAt }
func AchievementDate(a domain.Achievement) time.Time   { return a.DateEarned }
func NoteDate(n domain.Note) time.Time                 { return n.CreatedAt }
