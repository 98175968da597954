package domain

import (
	"strings"
	"time"
)

// Quadrant is one of the four fixed Eisenhower buckets.
type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "urgent_important"
	QuadrantNotUrgentImportant    Quadrant = "not_urgent_important"
	QuadrantUrgentNotImportant    Quadrant = "urgent_not_important"
	QuadrantNotUrgentNotImportant Quadrant = "not_urgent_not_important"
)

// Quadrants lists the buckets in display order.
var Quadrants = []Quadrant{
	QuadrantUrgentImportant,
	QuadrantNotUrgentImportant,
	QuadrantUrgentNotImportant,
	QuadrantNotUrgentNotImportant,
}

func (q Quadrant) IsValid() bool {
	switch q {
	case QuadrantUrgentImportant, QuadrantNotUrgentImportant, QuadrantUrgentNotImportant, QuadrantNotUrgentNotImportant:
		return true
	default:
		return false
	}
}

// ParseQuadrant falls back to urgent_important for unknown or empty input.
func ParseQuadrant(s string) Quadrant {
	q := Quadrant(strings.TrimSpace(strings.ToLower(s)))
	if !q.IsValid() {
		return QuadrantUrgentImportant
	}
	return q
}

type QuadrantTask struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Quadrant  Quadrant  `json:"quadrant"`
	Deadline  string    `json:"deadline,omitempty"`
	Time      string    `json:"time,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type QuadrantTaskDocument struct {
	ID        string  `json:"id"`
	Quadrant  string  `json:"quadrant"`
	Text      string  `json:"text"`
	Deadline  *string `json:"deadline"`
	Time      *string `json:"time"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func (d QuadrantTaskDocument) DocumentID() string { return d.ID }

func ValidateQuadrantTaskDocument(d QuadrantTaskDocument) error {
	if strings.TrimSpace(d.Text) == "" {
		return Invalid("text", ErrTaskTextEmpty)
	}
	if d.Quadrant != "" && !Quadrant(d.Quadrant).IsValid() {
		return Invalid("quadrant", ErrInvalidQuadrant)
	}
	if d.Deadline != nil && *d.Deadline != "" {
		if _, err := ParseDate(*d.Deadline); err != nil {
			return Invalid("deadline", ErrInvalidDate)
		}
	}
	return nil
}

type QuadrantTaskPatch struct {
	Text      *string `json:"text,omitempty"`
	Quadrant  *string `json:"quadrant,omitempty"`
	Deadline  *string `json:"deadline,omitempty"`
	Time      *string `json:"time,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (p QuadrantTaskPatch) Validate() error {
	if p.Text != nil && strings.TrimSpace(*p.Text) == "" {
		return Invalid("text", ErrTaskTextEmpty)
	}
	if p.Quadrant != nil && !Quadrant(*p.Quadrant).IsValid() {
		return Invalid("quadrant", ErrInvalidQuadrant)
	}
	return nil
}

func (p QuadrantTaskPatch) Apply(t *QuadrantTask) {
	if p.Text != nil {
		t.Text = strings.TrimSpace(*p.Text)
	}
	if p.Quadrant != nil {
		t.Quadrant = Quadrant(*p.Quadrant)
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
