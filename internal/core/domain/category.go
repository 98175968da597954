package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CategoryScope string

const (
	ScopeFinance CategoryScope = "finance"
	ScopeTask    CategoryScope = "task"
)

const (
	DefaultCategoryName  = "Other"
	DefaultCategoryColor = "#cbd5e0"
)

// Category is a finance or task category. Budget is only meaningful in the
// finance scope.
type Category struct {
	ID     string          `json:"id"`
	Scope  CategoryScope   `json:"scope"`
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Budget decimal.Decimal `json:"budget"`
}

type CategoryDocument struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Color  string           `json:"color,omitempty"`
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

func (d CategoryDocument) DocumentID() string { return d.ID }

func NewCategoryDraft(scope CategoryScope, name, color string, budget decimal.Decimal) (CategoryDocument, error) {
	doc := CategoryDocument{Name: strings.TrimSpace(name), Color: color}
	if doc.Color == "" {
		doc.Color = DefaultCategoryColor
	}
	if scope == ScopeFinance {
		doc.Budget = &budget
	}
	if err := ValidateCategoryDocument(doc); err != nil {
		return CategoryDocument{}, err
	}
	return doc, nil
}

func ValidateCategoryDocument(d CategoryDocument) error {
	if strings.TrimSpace(d.Name) == "" {
		return Invalid("name", ErrCategoryNameEmpty)
	}
	if !validColor(d.Color) {
		return Invalid("color", ErrInvalidColor)
	}
	if d.Budget != nil && d.Budget.IsNegative() {
		return Invalid("budget", ErrNegativeBudget)
	}
	return nil
}

type CategoryPatch struct {
	Name   *string          `json:"name,omitempty"`
	Color  *string          `json:"color,omitempty"`
	Budget *decimal.Decimal `json:"budget,omitempty"`
}

func (p CategoryPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Invalid("name", ErrCategoryNameEmpty)
	}
	if p.Color != nil && !validColor(*p.Color) {
		return Invalid("color", ErrInvalidColor)
	}
	if p.Budget != nil && p.Budget.IsNegative() {
		return Invalid("budget", ErrNegativeBudget)
	}
	return nil
}

func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Budget != nil {
		c.Budget = *p.Budget
	}
}
