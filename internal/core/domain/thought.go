package domain

import (
	"strings"
	"time"
)

type ThoughtCategory string

const (
	ThoughtMotivational ThoughtCategory = "motivational"
	ThoughtFocus        ThoughtCategory = "focus"
	ThoughtCalm         ThoughtCategory = "calm"
	ThoughtGratitude    ThoughtCategory = "gratitude"
	ThoughtConfidence   ThoughtCategory = "confidence"
	ThoughtCustom       ThoughtCategory = "custom"
)

var ThoughtCategories = []ThoughtCategory{
	ThoughtMotivational,
	ThoughtFocus,
	ThoughtCalm,
	ThoughtGratitude,
	ThoughtConfidence,
	ThoughtCustom,
}

func (c ThoughtCategory) Valid() bool {
	for _, known := range ThoughtCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Thought is a short affirmation shown in the rotating banner. Inactive
// thoughts are kept but never shown.
type Thought struct {
	ID        string          `json:"id"`
	Category  ThoughtCategory `json:"category"`
	Text      string          `json:"text"`
	Active    bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

type ThoughtDocument struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Text      string `json:"text"`
	IsActive  *bool  `json:"is_active,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (d ThoughtDocument) DocumentID() string { return d.ID }

func ValidateThoughtDocument(d ThoughtDocument) error {
	if strings.TrimSpace(d.Text) == "" {
		return Invalid("text", ErrThoughtEmpty)
	}
	if d.Category != "" && !ThoughtCategory(d.Category).Valid() {
		return Invalid("category", ErrInvalidThoughtCategory)
	}
	return nil
}

type ThoughtPatch struct {
	Category *string `json:"category,omitempty"`
	Text     *string `json:"text,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (p ThoughtPatch) Validate() error {
	if p.Text != nil && strings.TrimSpace(*p.Text) == "" {
		return Invalid("text", ErrThoughtEmpty)
	}
	if p.Category != nil && !ThoughtCategory(*p.Category).Valid() {
		return Invalid("category", ErrInvalidThoughtCategory)
	}
	return nil
}

func (p ThoughtPatch) Apply(t *Thought) {
	if p.Category != nil {
		t.Category = ThoughtCategory(*p.Category)
	}
	if p.Text != nil {
		t.Text = strings.TrimSpace(*p.Text)
	}
	if p.IsActive != nil {
		t.Active = *p.IsActive
	}
}
