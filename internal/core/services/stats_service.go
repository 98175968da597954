package services

import (
	"fmt"
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

type StatsService struct {
	store *Store
}

func NewStatsService(store *Store) *StatsService {
	return &StatsService{
		store: store,
	}
}

// PeriodStats computes per-habit statistics over the period at offset.
// Only due days count towards the rates.
func (s *StatsService) PeriodStats(span window.Span, offset int) (*domain.PeriodStats, error) {
	if !span.Navigable() {
		return nil, domain.Invalid("span", fmt.Errorf("span %q has no day window", span))
	}
	now := s.store.Now()
	period := window.Resolve(span, offset, now)
	current := s.store.Window()
	habits := s.store.Habits.List()

	stats := &domain.PeriodStats{
		Label:       period.Label,
		StartDate:   period.Days[0],
		EndDate:     period.Days[len(period.Days)-1],
		TotalHabits: len(habits),
		HabitStats:  make([]domain.HabitStat, 0, len(habits)),
	}

	totalDue := 0
	totalDone := 0
	streakSum := 0

	for _, h := range habits {
		hStat := habitStat(onWindow(h, period.Days, current), period.Days, now)
		totalDue += hStat.DaysDue
		totalDone += hStat.DaysCompleted
		streakSum += hStat.Streak
		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalDue > 0 {
		stats.OverallRate = int(math.Round(float64(totalDone) / float64(totalDue) * 100))
	}
	if len(habits) > 0 {
		stats.AvgStreak = int(math.Round(float64(streakSum) / float64(len(habits))))
	}
	return stats, nil
}

// HabitStats computes the statistics of one habit over the period at offset.
func (s *StatsService) HabitStats(id string, span window.Span, offset int) (*domain.HabitStat, error) {
	if !span.Navigable() {
		return nil, domain.Invalid("span", fmt.Errorf("span %q has no day window", span))
	}
	current := s.store.Window()
	h, ok := s.store.Habits.Get(id)
	if !ok {
		return nil, fmt.Errorf("habit %s: %w", id, domain.ErrEntityNotFound)
	}
	now := s.store.Now()
	days := window.Resolve(span, offset, now).Days
	st := habitStat(onWindow(h, days, current), days, now)
	return &st, nil
}

// onWindow drops the positional array unless days is the window it was
// projected on, leaving the date ledger as the only source.
func onWindow(h domain.Habit, days, current []string) domain.Habit {
	if len(days) > 0 && len(days) == len(current) && days[0] == current[0] {
		return h
	}
	h.Completed = nil
	return h
}

func habitStat(h domain.Habit, days []string, now time.Time) domain.HabitStat {
	progress := schedule.Project(h, days)
	due, done := schedule.Tally(h, days)
	_, longest := schedule.LedgerStreaks(h.CompletedByDate, now)

	st := domain.HabitStat{
		HabitID:       h.ID,
		HabitName:     h.Name,
		FrequencyDays: h.FrequencyDays,
		DaysDue:       due,
		DaysCompleted: done,
		Streak:        schedule.Streak(progress),
		LongestStreak: longest,
		DailyProgress: progress,
	}
	st.CompletionRate = schedule.CompletionRate(h, days)
	return st
}
