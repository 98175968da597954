package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

type SyncHandler struct {
	store *services.Store
}

func NewSyncHandler(store *services.Store) *SyncHandler {
	return &SyncHandler{store: store}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sync/reload", h.Reload)
	router.GET("/sync/divergence", h.Divergence)
	router.GET("/period", h.Period)
	router.GET("/dashboard", h.Dashboard)
}

// Reload godoc
// @Summary  Reload every kind from the remote
// @Description Kinds that fail keep their previous contents. The answer is 207 when at least one kind failed.
// @Tags     sync
// @Success  200 {array} services.ReloadResult
// @Success  207 {array} services.ReloadResult
// @Router   /sync/reload [post]
func (h *SyncHandler) Reload(c *gin.Context) {
	results := h.store.ReloadAll(c.Request.Context())
	status := http.StatusOK
	if services.ReloadErrors(results) != nil {
		status = http.StatusMultiStatus
	}
	c.JSON(status, results)
}

func (h *SyncHandler) Divergence(c *gin.Context) {
	divergences := h.store.Divergences()
	if divergences == nil {
		divergences = []domain.Divergence{}
	}
	c.JSON(http.StatusOK, gin.H{
		"divergences": divergences,
		"states":      h.store.SyncStates(),
	})
}

// Period resolves a navigator position without changing the habit window.
func (h *SyncHandler) Period(c *gin.Context) {
	span, offset, err := periodQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, window.Resolve(span, offset, h.store.Now()))
}

func (h *SyncHandler) Dashboard(c *gin.Context) {
	q, err := spanQuery(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.Dashboard(q))
}
