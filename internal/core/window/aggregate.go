package window

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// TotalExpenses sums the absolute value of every spending entry.
func TotalExpenses(expenses []domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Amount.IsNegative() {
			total = total.Add(e.Amount.Abs())
		}
	}
	return total
}

// SummarizeExpenses aggregates already filtered expenses. Categories keep
// their input order; spending on a category that no longer exists is
// reported under its reference label without a budget.
func SummarizeExpenses(expenses []domain.Expense, categories []domain.Category) domain.ExpenseSummary {
	sum := domain.ExpenseSummary{
		Income:       decimal.Zero,
		Spending:     decimal.Zero,
		Net:          decimal.Zero,
		AverageSpend: decimal.Zero,
		LargestSpend: decimal.Zero,
		Count:        len(expenses),
	}

	spent := make([]decimal.Decimal, len(categories))
	for i := range spent {
		spent[i] = decimal.Zero
	}
	orphans := map[string]int{}
	var orphanRows []domain.CategorySpend

	for _, e := range expenses {
		sum.Net = sum.Net.Add(e.Amount)
		if e.IsIncome() {
			sum.Income = sum.Income.Add(e.Amount)
			sum.IncomeCount++
			continue
		}
		if e.Amount.IsZero() {
			continue
		}

		abs := e.Amount.Abs()
		sum.Spending = sum.Spending.Add(abs)
		sum.ExpenseCount++
		if abs.GreaterThan(sum.LargestSpend) {
			sum.LargestSpend = abs
		}

		matched := false
		for i, c := range categories {
			if e.Category.Matches(c) {
				spent[i] = spent[i].Add(abs)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		label := e.Category.Label()
		if at, ok := orphans[label]; ok {
			orphanRows[at].Spent = orphanRows[at].Spent.Add(abs)
			continue
		}
		orphans[label] = len(orphanRows)
		orphanRows = append(orphanRows, domain.CategorySpend{
			CategoryID: e.Category.ID,
			Name:       label,
			Spent:      abs,
			Budget:     decimal.Zero,
		})
	}

	if sum.ExpenseCount > 0 {
		sum.AverageSpend = sum.Spending.Div(decimal.NewFromInt(int64(sum.ExpenseCount))).Round(2)
	}

	sum.ByCategory = make([]domain.CategorySpend, 0, len(categories)+len(orphanRows))
	for i, c := range categories {
		sum.ByCategory = append(sum.ByCategory, domain.CategorySpend{
			CategoryID: c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Spent:      spent[i],
			Budget:     c.Budget,
			OverBudget: c.Budget.IsPositive() && spent[i].GreaterThan(c.Budget),
		})
	}
	sum.ByCategory = append(sum.ByCategory, orphanRows...)
	return sum
}

// SummarizeTimer aggregates already filtered sessions; the today figures
// use now's calendar day and are measured against dailyGoal minutes. A
// dailyGoal below 1 means domain.DefaultDailyGoal.
func SummarizeTimer(sessions []domain.TimerSession, now time.Time, dailyGoal int) domain.TimerStats {
	if dailyGoal < 1 {
		dailyGoal = domain.DefaultDailyGoal
	}
	st := domain.TimerStats{DailyGoal: dailyGoal}
	today := domain.DateKey(now)
	for _, s := range sessions {
		st.TotalMinutes += s.Minutes
		st.TotalSessions++
		if domain.DateKey(s.StartedAt) == today {
			st.TodayMinutes += s.Minutes
			st.TodaySessions++
		}
	}
	if st.TotalSessions > 0 {
		avg := float64(st.TotalMinutes) / float64(st.TotalSessions)
		st.AvgSession = math.Round(avg*10) / 10
	}
	st.GoalProgress = int(math.Round(float64(st.TodayMinutes) * 100 / float64(dailyGoal)))
	st.GoalReached = st.TodayMinutes >= dailyGoal
	return st
}
