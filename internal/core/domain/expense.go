package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRef points at a finance category by id, by name, or both while
// older records still carry only the name.
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r CategoryRef) Matches(c Category) bool {
	if r.ID != "" && r.ID == c.ID {
		return true
	}
	return r.Name != "" && strings.EqualFold(strings.TrimSpace(r.Name), c.Name)
}

func (r CategoryRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Expense is a signed money movement: negative amounts are spending,
// positive amounts are income.
type Expense struct {
	ID          string          `json:"id"`
	Category    CategoryRef     `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time,omitempty"`
	Description string          `json:"description,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
}

func (e Expense) IsIncome() bool { return e.Amount.IsPositive() }

type ExpenseDocument struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Description string          `json:"description"`
	IsRecurring bool            `json:"is_recurring"`
}

func (d ExpenseDocument) DocumentID() string { return d.ID }

// ExpenseDraft is the add intent. Category holds an id or a name. When
// IsIncome is set it decides the sign of Amount; otherwise Amount is taken
// as already signed.
type ExpenseDraft struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IsIncome    *bool           `json:"is_income,omitempty"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Description string          `json:"description,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
}

// SignedAmount returns the draft amount with the income toggle applied.
func (d ExpenseDraft) SignedAmount() decimal.Decimal {
	if d.IsIncome == nil {
		return d.Amount
	}
	return SignedAmount(d.Amount, *d.IsIncome)
}

// SignedAmount applies the income/expense toggle to an unsigned amount.
func SignedAmount(amount decimal.Decimal, isIncome bool) decimal.Decimal {
	if isIncome {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}

func ValidateExpenseDraft(d ExpenseDraft) error {
	if d.Amount.IsZero() {
		return Invalid("amount", ErrInvalidAmount)
	}
	if _, err := ParseDate(d.Date); err != nil {
		return Invalid("date", ErrInvalidDate)
	}
	return nil
}

func ValidateExpenseDocument(d ExpenseDocument) error {
	if d.Amount.IsZero() {
		return Invalid("amount", ErrInvalidAmount)
	}
	if _, err := ParseDate(d.Date); err != nil {
		return Invalid("date", ErrInvalidDate)
	}
	if strings.TrimSpace(d.Title) == "" && d.Category == "" {
		return Invalid("category", ErrUnknownCategory)
	}
	return nil
}

// ExpensePatch is sent as-is to the gateway. Title and CategoryID are filled
// by category resolution; Category is the caller's input and never sent.
type ExpensePatch struct {
	Category    *string          `json:"-"`
	Title       *string          `json:"title,omitempty"`
	CategoryID  *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Time        *string          `json:"time,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsRecurring *bool            `json:"is_recurring,omitempty"`
}

func (p ExpensePatch) Validate() error {
	if p.Amount != nil && p.Amount.IsZero() {
		return Invalid("amount", ErrInvalidAmount)
	}
	if p.Date != nil {
		if _, err := ParseDate(*p.Date); err != nil {
			return Invalid("date", ErrInvalidDate)
		}
	}
	return nil
}

func (p ExpensePatch) Apply(e *Expense) {
	if p.Title != nil {
		e.Category.Name = *p.Title
	}
	if p.CategoryID != nil {
		e.Category.ID = *p.CategoryID
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Date != nil {
		if d, err := ParseDate(*p.Date); err == nil {
			e.Date = d
		}
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.IsRecurring != nil {
		e.IsRecurring = *p.IsRecurring
	}
}
