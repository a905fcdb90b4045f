package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

func (h *Handler) ListModels(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	q := parseQuery(c)
	models, err := h.svc.SearchModels(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("search models failed")
		mapError(c, err)
		return
	}
	if models == nil {
		models = []*hub.ModelInfo{}
	}
	if !q.Full {
		for _, m := range models {
			m.Siblings = nil
			m.Config = nil
			m.CardData = nil
		}
	}

	h.renderList(c, nextLink(c, q, len(models)), models)
}

func (h *Handler) GetModel(c *gin.Context) {
	model, err := h.svc.GetModel(c.Request.Context(), repoID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, model)
}

func (h *Handler) ModelTags(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	tags, err := h.svc.TagsByType(c.Request.Context(), mirror.RepoTypeModels)
	if err != nil {
		log.WithError(err).Error("load model tags failed")
		mapError(c, err)
		return
	}
	h.renderList(c, "", tags)
}
