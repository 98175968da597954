package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

// findCategory resolves ref against the collection by id first, then by
// case-insensitive name.
func findCategory(categories []domain.Category, ref string) (domain.Category, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Category{}, false
	}
	for _, c := range categories {
		if c.ID == ref {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return domain.Category{}, false
}

// ResolveFinanceCategory looks up a finance category by id or name.
func (s *Store) ResolveFinanceCategory(ref string) (domain.Category, bool) {
	return findCategory(s.FinanceCategories.List(), ref)
}

// ensureFinanceCategory returns the named category, creating it remotely
// when it does not exist yet. An empty ref means the default category.
func (s *Store) ensureFinanceCategory(ctx context.Context, ref string) (domain.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = domain.DefaultCategoryName
	}

	s.catMu.Lock()
	defer s.catMu.Unlock()
	if c, ok := s.ResolveFinanceCategory(ref); ok {
		return c, nil
	}

	draft, err := domain.NewCategoryDraft(domain.ScopeFinance, ref, "", decimal.Zero)
	if err != nil {
		return domain.Category{}, err
	}
	c, err := s.FinanceCategories.Add(ctx, draft)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category %q: %w", ref, err)
	}
	return c, nil
}

// AddExpense validates the draft, resolves its category (creating it when
// missing) and creates the expense remotely.
func (s *Store) AddExpense(ctx context.Context, draft domain.ExpenseDraft) (domain.Expense, error) {
	draft.Amount = draft.SignedAmount()
	if err := domain.ValidateExpenseDraft(draft); err != nil {
		return domain.Expense{}, err
	}
	date, _ := domain.ParseDate(draft.Date)

	cat, err := s.ensureFinanceCategory(ctx, draft.Category)
	if err != nil {
		return domain.Expense{}, err
	}

	return s.Expenses.Add(ctx, domain.ExpenseDocument{
		Title:       cat.Name,
		Category:    cat.ID,
		Amount:      draft.Amount,
		Date:        domain.DateKey(date),
		Time:        draft.Time,
		Description: draft.Description,
		IsRecurring: draft.IsRecurring,
	})
}

// UpdateExpense applies patch. A category change must name an existing
// category; it is never created here.
func (s *Store) UpdateExpense(id string, patch domain.ExpensePatch) (domain.Expense, error) {
	if patch.Category != nil {
		cat, ok := s.ResolveFinanceCategory(*patch.Category)
		if !ok {
			return domain.Expense{}, domain.Invalid("category", domain.ErrUnknownCategory)
		}
		patch.Title = &cat.Name
		patch.CategoryID = &cat.ID
		patch.Category = nil
	}
	return s.Expenses.Update(id, patch)
}

func (s *Store) RemoveExpense(id string) error {
	return s.Expenses.Remove(id)
}

// ListExpenses returns the expenses of the query, newest first.
func (s *Store) ListExpenses(q window.Query) []domain.Expense {
	items := window.Filter(s.Expenses.List(), q, s.rt.now(), window.ExpenseDate)
	return sortedByDate(items, window.ExpenseDate)
}

func (s *Store) ExpenseSummary(q window.Query) domain.ExpenseSummary {
	items := window.Filter(s.Expenses.List(), q, s.rt.now(), window.ExpenseDate)
	return window.SummarizeExpenses(items, s.FinanceCategories.List())
}

func (s *Store) TotalExpenses() decimal.Decimal {
	return window.TotalExpenses(s.Expenses.List())
}

func (s *Store) categories(scope domain.CategoryScope) *CategoryCollection {
	if scope == domain.ScopeTask {
		return s.TaskCategories
	}
	return s.FinanceCategories
}

type CreateCategoryInput struct {
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Budget decimal.Decimal `json:"budget"`
}

// AddCategory creates a category; names are unique within a scope.
func (s *Store) AddCategory(ctx context.Context, scope domain.CategoryScope, input CreateCategoryInput) (domain.Category, error) {
	draft, err := domain.NewCategoryDraft(scope, input.Name, input.Color, input.Budget)
	if err != nil {
		return domain.Category{}, err
	}

	s.catMu.Lock()
	defer s.catMu.Unlock()
	col := s.categories(scope)
	for _, c := range col.List() {
		if strings.EqualFold(c.Name, draft.Name) {
			return domain.Category{}, domain.Invalid("name", domain.ErrDuplicateCategory)
		}
	}
	return col.Add(ctx, draft)
}

func (s *Store) UpdateCategory(scope domain.CategoryScope, id string, patch domain.CategoryPatch) (domain.Category, error) {
	col := s.categories(scope)
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		for _, c := range col.List() {
			if c.ID != id && strings.EqualFold(c.Name, name) {
				return domain.Category{}, domain.Invalid("name", domain.ErrDuplicateCategory)
			}
		}
	}
	if scope == domain.ScopeTask {
		patch.Budget = nil
	}
	return col.Update(id, patch)
}

func (s *Store) RemoveCategory(scope domain.CategoryScope, id string) error {
	return s.categories(scope).Remove(id)
}
