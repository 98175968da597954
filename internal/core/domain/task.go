package domain

import (
	"strings"
	"time"
)

// Task is a to-do item filed under a task category.
type Task struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskDocument struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (d TaskDocument) DocumentID() string { return d.ID }

func ValidateTaskDocument(d TaskDocument) error {
	if strings.TrimSpace(d.Title) == "" {
		return Invalid("title", ErrTaskTitleEmpty)
	}
	if strings.TrimSpace(d.Category) == "" {
		return Invalid("category", ErrUnknownCategory)
	}
	return nil
}

type TaskPatch struct {
	Category    *string `json:"category,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Invalid("title", ErrTaskTitleEmpty)
	}
	return nil
}

func (p TaskPatch) Apply(t *Task) {
	if p.Category != nil {
		t.CategoryID = *p.Category
	}
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
