package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SyncStatus(c *gin.Context) {
	state, err := h.svc.Status(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("load sync status failed")
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// TriggerSync runs a sync inline and reports the resulting state. A
// sync already underway answers 409.
func (h *Handler) TriggerSync(c *gin.Context) {
	state, err := h.svc.Sync(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("sync failed")
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
