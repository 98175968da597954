package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

type QuadrantHandler struct {
	store *services.Store
}

func NewQuadrantHandler(store *services.Store) *QuadrantHandler {
	return &QuadrantHandler{store: store}
}

type moveQuadrantTaskRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (h *QuadrantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/quadrants", h.Board)

	tasks := router.Group("/quadrant-tasks")
	{
		tasks.POST("", createHandler(h.store.AddQuadrantTask))
		tasks.POST("/:id/move", h.Move)
		tasks.POST("/:id/complete", h.Complete)
		tasks.DELETE("/:id", removeHandler(h.store.RemoveQuadrantTask))
	}
}

// Board godoc
// @Summary  Quadrant tasks grouped by bucket
// @Tags     quadrants
// @Success  200 {object} map[string][]domain.QuadrantTask
// @Router   /quadrants [get]
func (h *QuadrantHandler) Board(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Board())
}

func (h *QuadrantHandler) Move(c *gin.Context) {
	var req moveQuadrantTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.store.MoveQuadrantTask(c.Param("id"), domain.Quadrant(req.From), domain.Quadrant(req.To))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Complete flips completion of the task in whichever bucket holds it.
func (h *QuadrantHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	_, q, ok := h.store.Board().Find(id)
	if !ok {
		respondError(c, domain.ErrEntityNotFound)
		return
	}

	task, err := h.store.ToggleQuadrantComplete(q, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
