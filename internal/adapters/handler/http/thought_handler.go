package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
)

type ThoughtHandler struct {
	store *services.Store
}

func NewThoughtHandler(store *services.Store) *ThoughtHandler {
	return &ThoughtHandler{store: store}
}

func (h *ThoughtHandler) RegisterRoutes(router *gin.RouterGroup) {
	s := h.store

	thoughts := router.Group("/thoughts")
	{
		thoughts.GET("", h.List)
		thoughts.POST("", createHandler(s.AddThought))
		thoughts.GET("/next", h.Next)
		thoughts.PATCH("/:id", updateHandler(s.Thoughts.Update))
		thoughts.DELETE("/:id", removeHandler(s.Thoughts.Remove))
	}
}

// List returns the active thoughts, filtered by ?category=. ?active=false
// includes the inactive ones.
func (h *ThoughtHandler) List(c *gin.Context) {
	cat, ok := categoryQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.ListThoughts(services.ThoughtFilter{
		Category:        cat,
		IncludeInactive: c.Query("active") == "false",
	}))
}

// Next returns the banner thought shown after ?after=.
func (h *ThoughtHandler) Next(c *gin.Context) {
	cat, ok := categoryQuery(c)
	if !ok {
		return
	}
	t, found := h.store.NextThought(cat, c.Query("after"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active thoughts"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func categoryQuery(c *gin.Context) (domain.ThoughtCategory, bool) {
	cat := domain.ThoughtCategory(c.Query("category"))
	if cat != "" && !cat.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidThoughtCategory.Error(), "field": "category"})
		return "", false
	}
	return cat, true
}
