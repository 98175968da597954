package services

import (
	"context"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

// ListNotes returns every note, pinned first and newest first within each group.
func (s *Store) ListNotes() []domain.Note {
	notes := s.Notes.List()
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes
}

func (s *Store) AddNote(ctx context.Context, draft domain.NoteDocument) (domain.Note, error) {
	if draft.Color == "" {
		draft.Color = domain.DefaultNoteColor
	}
	stamp := s.rt.now().UTC().Format(time.RFC3339)
	draft.CreatedAt = stamp
	draft.UpdatedAt = stamp
	return s.Notes.Add(ctx, draft)
}

// TogglePin flips the pinned flag of a note.
func (s *Store) TogglePin(id string) (domain.Note, error) {
	n, ok := s.Notes.Get(id)
	if !ok {
		return domain.Note{}, domain.ErrEntityNotFound
	}
	pinned := !n.Pinned
	return s.Notes.Update(id, domain.NotePatch{Pinned: &pinned})
}

// AddTask creates a task under an existing task category, given by id or
// name.
func (s *Store) AddTask(ctx context.Context, draft domain.TaskDocument) (domain.Task, error) {
	if err := domain.ValidateTaskDocument(draft); err != nil {
		return domain.Task{}, err
	}
	cat, ok := findCategory(s.TaskCategories.List(), draft.Category)
	if !ok {
		return domain.Task{}, domain.Invalid("category", domain.ErrUnknownCategory)
	}
	draft.Category = cat.ID
	return s.Tasks.Add(ctx, draft)
}

func (s *Store) UpdateTask(id string, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Category != nil {
		cat, ok := findCategory(s.TaskCategories.List(), *patch.Category)
		if !ok {
			return domain.Task{}, domain.Invalid("category", domain.ErrUnknownCategory)
		}
		patch.Category = &cat.ID
	}
	return s.Tasks.Update(id, patch)
}

// TasksByCategory groups tasks by category id.
func (s *Store) TasksByCategory() map[string][]domain.Task {
	out := make(map[string][]domain.Task)
	for _, t := range s.Tasks.List() {
		out[t.CategoryID] = append(out[t.CategoryID], t)
	}
	return out
}

func (s *Store) AddAchievement(ctx context.Context, draft domain.AchievementDocument) (domain.Achievement, error) {
	if draft.DateEarned == "" {
		draft.DateEarned = domain.DateKey(s.rt.now())
	} else if d, err := domain.ParseDate(draft.DateEarned); err == nil {
		draft.DateEarned = domain.DateKey(d)
	}
	return s.Achievements.Add(ctx, draft)
}

// ListAchievements returns the achievements of the query, newest first.
func (s *Store) ListAchievements(q window.Query) []domain.Achievement {
	items := window.Filter(s.Achievements.List(), q, s.rt.now(), window.AchievementDate)
	return sortedByDate(items, window.AchievementDate)
}

func (s *Store) AddTimerSession(ctx context.Context, draft domain.TimerSessionDocument) (domain.TimerSession, error) {
	if draft.TaskName == "" {
		draft.TaskName = domain.DefaultSessionLabel
	}
	if draft.CreatedAt == "" {
		draft.CreatedAt = s.rt.now().UTC().Format(time.RFC3339)
	}
	return s.TimerSessions.Add(ctx, draft)
}

// ListTimerSessions returns the sessions of the query, newest first.
func (s *Store) ListTimerSessions(q window.Query) []domain.TimerSession {
	items := window.Filter(s.TimerSessions.List(), q, s.rt.now(), window.TimerSessionDate)
	return sortedByDate(items, window.TimerSessionDate)
}

func (s *Store) TimerStats(q window.Query) domain.TimerStats {
	now := s.rt.now()
	items := window.Filter(s.TimerSessions.List(), q, now, window.TimerSessionDate)
	return window.SummarizeTimer(items, now, s.DailyGoal())
}

func (s *Store) DailyGoal() int { return int(s.dailyGoal.Load()) }

// SetDailyGoal changes the daily focus goal. It is local only.
func (s *Store) SetDailyGoal(minutes int) error {
	if minutes < 1 {
		return domain.Invalid("minutes", domain.ErrInvalidDuration)
	}
	s.dailyGoal.Store(int64(minutes))
	return nil
}
