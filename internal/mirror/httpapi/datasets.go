package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

func (h *Handler) ListDatasets(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	q := parseQuery(c)
	datasets, err := h.svc.SearchDatasets(c.Request.Context(), q)
	if err != nil {
		log.WithError(err).Error("search datasets failed")
		mapError(c, err)
		return
	}
	if datasets == nil {
		datasets = []*hub.DatasetInfo{}
	}
	if !q.Full {
		for _, d := range datasets {
			d.Siblings = nil
			d.CardData = nil
		}
	}

	h.renderList(c, nextLink(c, q, len(datasets)), datasets)
}

func (h *Handler) GetDataset(c *gin.Context) {
	dataset, err := h.svc.GetDataset(c.Request.Context(), repoID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataset)
}

func (h *Handler) DatasetTags(c *gin.Context) {
	if h.serveCached(c) {
		return
	}

	tags, err := h.svc.TagsByType(c.Request.Context(), mirror.RepoTypeDatasets)
	if err != nil {
		log.WithError(err).Error("load dataset tags failed")
		mapError(c, err)
		return
	}
	h.renderList(c, "", tags)
}
