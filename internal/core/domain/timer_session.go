package domain

import "time"

const DefaultSessionLabel = "Focus Session"

// TimerSession is a completed focus session; Minutes is its length.
type TimerSession struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Minutes   int       `json:"minutes"`
	StartedAt time.Time `json:"started_at"`
}

type TimerSessionDocument struct {
	ID        string `json:"id"`
	Duration  int    `json:"duration"`
	TaskName  string `json:"task_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (d TimerSessionDocument) DocumentID() string { return d.ID }

func ValidateTimerSessionDocument(d TimerSessionDocument) error {
	if d.Duration <= 0 {
		return Invalid("duration", ErrInvalidDuration)
	}
	return nil
}

type TimerSessionPatch struct {
	TaskName *string `json:"task_name,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}

func (p TimerSessionPatch) Validate() error {
	if p.Duration != nil && *p.Duration <= 0 {
		return Invalid("duration", ErrInvalidDuration)
	}
	return nil
}

func (p TimerSessionPatch) Apply(s *TimerSession) {
	if p.TaskName != nil {
		s.Label = *p.TaskName
	}
	if p.Duration != nil {
		s.Minutes = *p.Duration
	}
}
