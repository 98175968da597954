package services

import (
	"context"
	"fmt"
	"log"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
)

type CreateHabitInput struct {
	Name      string `json:"name"`
	Frequency int    `json:"frequency"`
}

// AddHabit creates a habit anchored on today.
func (s *Store) AddHabit(ctx context.Context, input CreateHabitInput) (domain.Habit, error) {
	draft, err := domain.NewHabitDraft(input.Name, input.Frequency, s.rt.now())
	if err != nil {
		return domain.Habit{}, err
	}
	draft.Completed = make([]bool, len(s.Window()))
	return s.Habits.Add(ctx, draft)
}

func (s *Store) UpdateHabit(id string, patch domain.HabitPatch) (domain.Habit, error) {
	return s.Habits.Update(id, patch)
}

func (s *Store) RemoveHabit(id string) error {
	return s.Habits.Remove(id)
}

// ToggleHabit records completion for one day of a habit. Days that are not
// due are refused before anything is sent.
func (s *Store) ToggleHabit(id string, key schedule.DayKey, value bool) (domain.Habit, error) {
	var date string
	win := s.Window()
	return s.Habits.mutate(id, domain.OpToggle, func(h domain.Habit) (domain.Habit, error) {
		next, d, err := schedule.Toggle(h, key, value, win)
		if err != nil {
			return h, err
		}
		date = d
		return next, nil
	}, func(ctx context.Context) (domain.HabitDocument, error) {
		doc, err := s.habits.Toggle(ctx, id, date, value)
		if err != nil || value {
			return doc, err
		}
		return keepUntick(doc, date), nil
	})
}

// keepUntick records date as an explicit false in the response ledger. The
// backend deletes unticked days, which would otherwise let a legacy
// positional value show through again.
func keepUntick(doc domain.HabitDocument, date string) domain.HabitDocument {
	ledger := make(map[string]bool, len(doc.CompletedByDate)+1)
	for k, v := range doc.CompletedByDate {
		ledger[k] = v
	}
	ledger[date] = false
	doc.CompletedByDate = ledger
	return doc
}

// LogAllDue marks every unpaused habit that is due today and not yet
// completed. It returns the habits it toggled.
func (s *Store) LogAllDue() []domain.Habit {
	now := s.rt.now()
	today := domain.DateKey(now)

	var logged []domain.Habit
	for _, h := range schedule.DueOnDay(s.ListHabits(), now) {
		if h.CompletedByDate[today] {
			continue
		}
		next, err := s.ToggleHabit(h.ID, schedule.DateKey(today), true)
		if err != nil {
			log.Printf("[STORE] log due habit %s for %s skipped: %v", h.ID, today, err)
			continue
		}
		logged = append(logged, next)
	}
	return logged
}

// HabitsDueToday lists the unpaused habits due on the current day.
func (s *Store) HabitsDueToday() []domain.Habit {
	return schedule.DueOnDay(s.ListHabits(), s.rt.now())
}

// CompletionRate is the habit's completion rate over the selected window.
func (s *Store) CompletionRate(id string) (int, error) {
	win := s.Window()
	h, ok := s.Habits.Get(id)
	if !ok {
		return 0, fmt.Errorf("habit %s: %w", id, domain.ErrEntityNotFound)
	}
	return schedule.CompletionRate(h, win), nil
}

func (s *Store) AverageStreak() int {
	return schedule.AverageStreak(s.ListHabits())
}
