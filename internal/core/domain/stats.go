package domain

import "github.com/shopspring/decimal"

type PeriodStats struct {
	Label       string      `json:"label"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate int         `json:"overall_completion_rate"`
	AvgStreak   int         `json:"avg_streak"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitID        string `json:"habit_id"`
	HabitName      string `json:"habit_name"`
	FrequencyDays  int    `json:"frequency_days"`
	DaysDue        int    `json:"days_due"`
	DaysCompleted  int    `json:"days_completed"`
	CompletionRate int    `json:"completion_rate"`
	Streak         int    `json:"streak"`
	LongestStreak  int    `json:"longest_streak"`
	DailyProgress  []bool `json:"daily_progress"`
}

type CategorySpend struct {
	CategoryID string          `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Color      string          `json:"color,omitempty"`
	Spent      decimal.Decimal `json:"spent"`
	Budget     decimal.Decimal `json:"budget"`
	OverBudget bool            `json:"over_budget"`
}

// ExpenseSummary aggregates a span of expenses. Spending and the per-entry
// figures are absolute values.
type ExpenseSummary struct {
	Income       decimal.Decimal `json:"income"`
	Spending     decimal.Decimal `json:"spending"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
	ExpenseCount int             `json:"expense_count"`
	IncomeCount  int             `json:"income_count"`
	AverageSpend decimal.Decimal `json:"average_spend"`
	LargestSpend decimal.Decimal `json:"largest_spend"`
	ByCategory   []CategorySpend `json:"by_category"`
}

// DefaultDailyGoal is the daily focus target in minutes.
const DefaultDailyGoal = 120

// TimerStats summarises focus sessions. GoalProgress is today's minutes as
// a rounded percentage of DailyGoal and may exceed 100.
type TimerStats struct {
	TotalMinutes  int     `json:"total_minutes"`
	TotalSessions int     `json:"total_sessions"`
	AvgSession    float64 `json:"avg_session"`
	TodayMinutes  int     `json:"today_minutes"`
	TodaySessions int     `json:"today_sessions"`
	DailyGoal     int     `json:"daily_goal"`
	GoalProgress  int     `json:"goal_progress"`
	GoalReached   bool    `json:"goal_reached"`
}
