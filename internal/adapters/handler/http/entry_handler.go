package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

// EntryHandler serves the plainer kinds: notes, tasks with their
// categories, achievements and timer sessions.
type EntryHandler struct {
	store *services.Store
}

func NewEntryHandler(store *services.Store) *EntryHandler {
	return &EntryHandler{store: store}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	s := h.store

	notes := router.Group("/notes")
	{
		notes.GET("", listHandler(s.ListNotes))
		notes.POST("", createHandler(s.AddNote))
		notes.PATCH("/:id", updateHandler(s.Notes.Update))
		notes.DELETE("/:id", removeHandler(s.Notes.Remove))
		notes.POST("/:id/pin", h.TogglePin)
	}

	registerCategoryRoutes(router.Group("/task-categories"), s, domain.ScopeTask)

	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", createHandler(s.AddTask))
		tasks.PATCH("/:id", updateHandler(s.UpdateTask))
		tasks.DELETE("/:id", removeHandler(s.Tasks.Remove))
	}

	achievements := router.Group("/achievements")
	{
		achievements.GET("", spanListHandler(s.ListAchievements))
		achievements.POST("", createHandler(s.AddAchievement))
		achievements.PATCH("/:id", updateHandler(s.Achievements.Update))
		achievements.DELETE("/:id", removeHandler(s.Achievements.Remove))
	}

	sessions := router.Group("/timer-sessions")
	{
		sessions.GET("", spanListHandler(s.ListTimerSessions))
		sessions.POST("", createHandler(s.AddTimerSession))
		sessions.GET("/stats", h.TimerStats)
		sessions.PUT("/goal", h.SetDailyGoal)
		sessions.PATCH("/:id", updateHandler(s.TimerSessions.Update))
		sessions.DELETE("/:id", removeHandler(s.TimerSessions.Remove))
	}
}

func (h *EntryHandler) TogglePin(c *gin.Context) {
	note, err := h.store.TogglePin(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// ListTasks returns every task, or the tasks grouped by category id with
// ?group=category.
func (h *EntryHandler) ListTasks(c *gin.Context) {
	if c.Query("group") == "category" {
		c.JSON(http.StatusOK, h.store.TasksByCategory())
		return
	}
	c.JSON(http.StatusOK, h.store.Tasks.List())
}

func (h *EntryHandler) TimerStats(c *gin.Context) {
	q, err := spanQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.TimerStats(q))
}

type dailyGoalRequest struct {
	Minutes int `json:"minutes"`
}

func (h *EntryHandler) SetDailyGoal(c *gin.Context) {
	var req dailyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.store.SetDailyGoal(req.Minutes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_goal": h.store.DailyGoal()})
}
