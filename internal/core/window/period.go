package window

import (
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

const (
	MaxWeeksBack  = 52
	MaxMonthsBack = 24
)

// periodStart is the first day of the span period displaced by offset.
func periodStart(span Span, offset int, now time.Time) time.Time {
	n := domain.Day(now)
	switch span {
	case SpanMonth:
		return time.Date(n.Year(), n.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	default:
		return StartOfWeek(n.AddDate(0, 0, offset*7))
	}
}

// PeriodWindow returns the day keys of the period at offset: seven keys
// starting on Sunday for a week, one key per day for a month. Spans without
// offset windows return nil.
func PeriodWindow(span Span, offset int, now time.Time) []string {
	if !span.Navigable() {
		return nil
	}
	start := periodStart(span, offset, now)
	n := 7
	if span == SpanMonth {
		n = start.AddDate(0, 1, -1).Day()
	}

	keys := make([]string, n)
	for i := range keys {
		keys[i] = domain.DateKey(start.AddDate(0, 0, i))
	}
	return keys
}

// PeriodLabel names the period at offset, e.g. "This Week", "Last Month",
// "Jan 7 - Jan 13" or "January 2024".
func PeriodLabel(span Span, offset int, now time.Time) string {
	switch span {
	case SpanWeek:
		switch offset {
		case 0:
			return "This Week"
		case -1:
			return "Last Week"
		}
		start := periodStart(span, offset, now)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
	case SpanMonth:
		switch offset {
		case 0:
			return "This Month"
		case -1:
			return "Last Month"
		}
		return periodStart(span, offset, now).Format("January 2006")
	case SpanYear:
		return "This Year"
	case SpanCustom:
		return "Custom Range"
	default:
		return "All Time"
	}
}

// CanGoBack reports whether offset may still be decremented.
func CanGoBack(span Span, offset int) bool {
	switch span {
	case SpanWeek:
		return offset > -MaxWeeksBack
	case SpanMonth:
		return offset > -MaxMonthsBack
	default:
		return false
	}
}

// CanGoForward reports whether offset may be incremented without passing
// the current period.
func CanGoForward(span Span, offset int) bool {
	return span.Navigable() && offset < 0
}

// ClampOffset bounds offset to the navigable range of span.
func ClampOffset(span Span, offset int) int {
	if !span.Navigable() || offset > 0 {
		return 0
	}
	limit := -MaxWeeksBack
	if span == SpanMonth {
		limit = -MaxMonthsBack
	}
	if offset < limit {
		return limit
	}
	return offset
}

// Period is one resolved window.
type Period struct {
	Span       Span     `json:"span"`
	Offset     int      `json:"offset"`
	Label      string   `json:"label"`
	Days       []string `json:"days"`
	CanGoBack  bool     `json:"can_go_back"`
	CanForward bool     `json:"can_go_forward"`
}

func Resolve(span Span, offset int, now time.Time) Period {
	offset = ClampOffset(span, offset)
	return Period{
		Span:       span,
		Offset:     offset,
		Label:      PeriodLabel(span, offset, now),
		Days:       PeriodWindow(span, offset, now),
		CanGoBack:  CanGoBack(span, offset),
		CanForward: CanGoForward(span, offset),
	}
}

// Navigator tracks the selected span and offset. The zero value is not
// usable; use NewNavigator.
type Navigator struct {
	span   Span
	offset int
	now    func() time.Time
}

func NewNavigator(span Span, now func() time.Time) *Navigator {
	if now == nil {
		now = time.Now
	}
	if !span.Navigable() {
		span = SpanWeek
	}
	return &Navigator{span: span, now: now}
}

func (n *Navigator) Span() Span  { return n.span }
func (n *Navigator) Offset() int { return n.offset }

// SetSpan switches span and resets the offset to the current period.
func (n *Navigator) SetSpan(span Span) {
	if !span.Navigable() {
		return
	}
	n.span = span
	n.offset = 0
}

func (n *Navigator) Back() bool {
	if !CanGoBack(n.span, n.offset) {
		return false
	}
	n.offset--
	return true
}

func (n *Navigator) Forward() bool {
	if !CanGoForward(n.span, n.offset) {
		return false
	}
	n.offset++
	return true
}

func (n *Navigator) Current() Period {
	return Resolve(n.span, n.offset, n.now())
}
