package domain

import (
	"strings"
	"time"
)

const DefaultNoteColor = "#fef08a"

// Note content is plain text with inline lightweight markup; it is stored
// verbatim and never interpreted here.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Color     string    `json:"color"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Color     string `json:"color,omitempty"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (d NoteDocument) DocumentID() string { return d.ID }

func ValidateNoteDocument(d NoteDocument) error {
	if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == "" {
		return Invalid("title", ErrNoteEmpty)
	}
	if !validColor(d.Color) {
		return Invalid("color", ErrInvalidColor)
	}
	return nil
}

type NotePatch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
	Color    *string `json:"color,omitempty"`
	Pinned   *bool   `json:"pinned,omitempty"`
}

func (p NotePatch) Validate() error {
	if p.Color != nil && !validColor(*p.Color) {
		return Invalid("color", ErrInvalidColor)
	}
	return nil
}

func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Pinned != nil {
		n.Pinned = *p.Pinned
	}
}
