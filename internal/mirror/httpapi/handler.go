// Package httpapi serves the mirrored catalog over the same paths and
// response shapes as huggingface.co, so hub.Client works unchanged
// against a mirror endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
)

// Service is the mirror surface the HTTP layer exposes.
type Service interface {
	Sync(ctx context.Context) (*mirror.SyncState, error)
	Status(ctx context.Context) (*mirror.SyncState, error)
	SearchModels(ctx context.Context, q mirror.Query) ([]*hub.ModelInfo, error)
	GetModel(ctx context.Context, id string) (*hub.ModelInfo, error)
	SearchDatasets(ctx context.Context, q mirror.Query) ([]*hub.DatasetInfo, error)
	GetDataset(ctx context.Context, id string) (*hub.DatasetInfo, error)
	TagsByType(ctx context.Context, repoType string) (map[string][]mirror.Tag, error)
}

var _ Service = (*mirror.Service)(nil)

type Handler struct {
	svc   Service
	cache mirror.Cache
}

// New builds the HTTP handler. cache may be nil to serve uncached.
func New(svc Service, cache mirror.Cache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Models
	r.GET("/models", h.ListModels)
	r.GET("/models/:owner", h.GetModel)
	r.GET("/models/:owner/:name", h.GetModel)

	// Datasets
	r.GET("/datasets", h.ListDatasets)
	r.GET("/datasets/:owner", h.GetDataset)
	r.GET("/datasets/:owner/:name", h.GetDataset)

	// Tag vocabularies
	r.GET("/models-tags-by-type", h.ModelTags)
	r.GET("/datasets-tags-by-type", h.DatasetTags)

	// Mirror control
	r.GET("/mirror/status", h.SyncStatus)
	r.POST("/mirror/sync", h.TriggerSync)
}

// parseQuery reads the hub listing parameters off the request.
func parseQuery(c *gin.Context) mirror.Query {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	_, full := c.GetQuery("full")
	return mirror.Query{
		Search:     c.Query("search"),
		Author:     c.Query("author"),
		Filters:    c.QueryArray("filter"),
		Sort:       c.Query("sort"),
		Descending: c.Query("direction") == "-1",
		Limit:      limit,
		Offset:     offset,
		Full:       full,
	}
}

// repoID joins the one- or two-segment repo path parameters.
func repoID(c *gin.Context) string {
	if name := c.Param("name"); name != "" {
		return c.Param("owner") + "/" + name
	}
	return c.Param("owner")
}

// nextLink builds the rel="next" Link target for a page that came back
// at the clamp. An explicit limit the page could honor suppresses it;
// limits past the clamp were cut short, so those pages still paginate.
func nextLink(c *gin.Context, q mirror.Query, got int) string {
	if got < mirror.MaxQueryLimit {
		return ""
	}
	if q.Limit > 0 && q.Limit <= mirror.MaxQueryLimit {
		return ""
	}
	next := *c.Request.URL
	vals := next.Query()
	vals.Set("offset", strconv.Itoa(q.Offset+got))
	next.RawQuery = vals.Encode()
	return fmt.Sprintf("<%s>; rel=\"next\"", next.String())
}

// cachedResponse carries a rendered body plus the Link header it was
// served with, so replays paginate the same way.
type cachedResponse struct {
	Link string          `json:"link,omitempty"`
	Body json.RawMessage `json:"body"`
}

const jsonContentType = "application/json; charset=utf-8"

func (h *Handler) serveCached(c *gin.Context) bool {
	if h.cache == nil {
		return false
	}
	raw, ok := h.cache.Get(c.Request.Context(), c.Request.URL.RequestURI())
	if !ok {
		return false
	}
	var cached cachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		return false
	}
	if cached.Link != "" {
		c.Header("Link", cached.Link)
	}
	c.Data(http.StatusOK, jsonContentType, cached.Body)
	return true
}

// renderList writes a list or tag payload and stores it in the cache.
func (h *Handler) renderList(c *gin.Context, link string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		mapError(c, err)
		return
	}
	if link != "" {
		c.Header("Link", link)
	}
	c.Data(http.StatusOK, jsonContentType, body)

	if h.cache != nil {
		entry, err := json.Marshal(cachedResponse{Link: link, Body: body})
		if err != nil {
			return
		}
		h.cache.Set(c.Request.Context(), c.Request.URL.RequestURI(), entry)
	}
}
