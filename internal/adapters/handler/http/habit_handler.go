package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

type HabitHandler struct {
	store *services.Store
	stats *services.StatsService
}

func NewHabitHandler(store *services.Store, stats *services.StatsService) *HabitHandler {
	return &HabitHandler{
		store: store,
		stats: stats,
	}
}

type toggleHabitRequest struct {
	Day   string `json:"day" binding:"required"`
	Value *bool  `json:"value" binding:"required"`
}

type windowRequest struct {
	Span   string `json:"span" binding:"required"`
	Offset int    `json:"offset"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.GET("", h.List)
		habits.POST("", createHandler(h.store.AddHabit))
		habits.POST("/log-due", h.LogDue)
		habits.GET("/stats", h.PeriodStats)
		habits.PUT("/window", h.SetWindow)
		habits.PATCH("/:id", updateHandler(h.store.UpdateHabit))
		habits.DELETE("/:id", removeHandler(h.store.RemoveHabit))
		habits.POST("/:id/toggle", h.Toggle)
		habits.GET("/:id/stats", h.HabitStats)
	}
}

// List godoc
// @Summary  List habits
// @Tags     habits
// @Param    due query string false "set to today to list only the habits due today"
// @Success  200 {array} domain.Habit
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	if c.Query("due") == "today" {
		due := h.store.HabitsDueToday()
		if due == nil {
			due = []domain.Habit{}
		}
		c.JSON(http.StatusOK, due)
		return
	}
	c.JSON(http.StatusOK, h.store.ListHabits())
}

// Toggle godoc
// @Summary  Set completion of one day
// @Tags     habits
// @Param    id path string true "habit id"
// @Success  200 {object} domain.Habit
// @Failure  400 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /habits/{id}/toggle [post]
func (h *HabitHandler) Toggle(c *gin.Context) {
	var req toggleHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	key, err := schedule.ParseDayKey(req.Day)
	if err != nil {
		respondError(c, err)
		return
	}

	habit, err := h.store.ToggleHabit(c.Param("id"), key, *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) LogDue(c *gin.Context) {
	logged := h.store.LogAllDue()
	if logged == nil {
		logged = []domain.Habit{}
	}
	c.JSON(http.StatusOK, gin.H{"logged": logged, "count": len(logged)})
}

func (h *HabitHandler) SetWindow(c *gin.Context) {
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	period, err := h.store.SetWindow(window.ParseSpan(req.Span), req.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, period)
}

// PeriodStats godoc
// @Summary  Completion statistics of every habit over a week or month
// @Tags     habits
// @Param    span   query string false "week or month"
// @Param    offset query int    false "periods back from the current one"
// @Success  200 {object} domain.PeriodStats
// @Router   /habits/stats [get]
func (h *HabitHandler) PeriodStats(c *gin.Context) {
	span, offset, err := periodQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	stats, err := h.stats.PeriodStats(span, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *HabitHandler) HabitStats(c *gin.Context) {
	span, offset, err := periodQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	stat, err := h.stats.HabitStats(c.Param("id"), span, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}
