package domain

import (
	"strings"
	"time"
)

// Achievement.DateEarned is always a calendar day (UTC midnight).
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	DateEarned  time.Time `json:"date_earned"`
}

type AchievementDocument struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DateEarned  string `json:"date_earned"`
}

func (d AchievementDocument) DocumentID() string { return d.ID }

func ValidateAchievementDocument(d AchievementDocument) error {
	if strings.TrimSpace(d.Title) == "" {
		return Invalid("title", ErrAchievementTitle)
	}
	if _, err := ParseDate(d.DateEarned); err != nil {
		return Invalid("date_earned", ErrInvalidDate)
	}
	return nil
}

type AchievementPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	DateEarned  *string `json:"date_earned,omitempty"`
}

func (p AchievementPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Invalid("title", ErrAchievementTitle)
	}
	if p.DateEarned != nil {
		if _, err := ParseDate(*p.DateEarned); err != nil {
			return Invalid("date_earned", ErrInvalidDate)
		}
	}
	return nil
}

func (p AchievementPatch) Apply(a *Achievement) {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.DateEarned != nil {
		if d, err := ParseDate(*p.DateEarned); err == nil {
			a.DateEarned = d
		}
	}
}
