package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

type ExpenseHandler struct {
	store *services.Store
}

func NewExpenseHandler(store *services.Store) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// updateExpenseRequest names the category by id or name; the store
// resolves it before patching.
type updateExpenseRequest struct {
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Time        *string          `json:"time"`
	Description *string          `json:"description"`
	IsRecurring *bool            `json:"is_recurring"`
}

func (r updateExpenseRequest) patch() domain.ExpensePatch {
	return domain.ExpensePatch{
		Category:    r.Category,
		Amount:      r.Amount,
		Date:        r.Date,
		Time:        r.Time,
		Description: r.Description,
		IsRecurring: r.IsRecurring,
	}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/expenses")
	{
		expenses.GET("", spanListHandler(h.store.ListExpenses))
		expenses.POST("", createHandler(h.store.AddExpense))
		expenses.GET("/summary", h.Summary)
		expenses.PATCH("/:id", updateHandler(func(id string, req updateExpenseRequest) (domain.Expense, error) {
			return h.store.UpdateExpense(id, req.patch())
		}))
		expenses.DELETE("/:id", removeHandler(h.store.RemoveExpense))
	}

	registerCategoryRoutes(router.Group("/finance-categories"), h.store, domain.ScopeFinance)
}

// Summary godoc
// @Summary  Income, spending and per-category budget use
// @Tags     expenses
// @Param    span query string false "week, month, year, custom or all"
// @Param    from query string false "custom span start (YYYY-MM-DD)"
// @Param    to   query string false "custom span end (YYYY-MM-DD)"
// @Success  200 {object} domain.ExpenseSummary
// @Router   /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	q, err := spanQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summary":        h.store.ExpenseSummary(q),
		"total_expenses": h.store.TotalExpenses(),
	})
}

func registerCategoryRoutes(g *gin.RouterGroup, store *services.Store, scope domain.CategoryScope) {
	col := store.FinanceCategories
	if scope == domain.ScopeTask {
		col = store.TaskCategories
	}

	g.GET("", listHandler(col.List))
	g.POST("", createHandler(func(ctx context.Context, in services.CreateCategoryInput) (domain.Category, error) {
		return store.AddCategory(ctx, scope, in)
	}))
	g.PATCH("/:id", updateHandler(func(id string, p domain.CategoryPatch) (domain.Category, error) {
		return store.UpdateCategory(scope, id, p)
	}))
	g.DELETE("/:id", removeHandler(func(id string) error {
		return store.RemoveCategory(scope, id)
	}))
}
