package httpctrl

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"marketwatch/internal/domain/items"
	"marketwatch/internal/pkg/catalog"
)

// ItemsController serves the dashboard's read surface. Catalog entries
// without a persisted record are synthesized as cold placeholders, and store
// failures degrade to placeholders rather than surfacing as 5xx: stale or
// empty data always beats an error here.
type ItemsController struct {
	Repo    items.Repo
	Catalog []items.CatalogEntry
	Logger  *slog.Logger

	index map[int64]items.CatalogEntry
}

func NewItemsController(repo items.Repo, cat []items.CatalogEntry, log *slog.Logger) *ItemsController {
	if log == nil {
		log = slog.Default()
	}
	return &ItemsController{Repo: repo, Catalog: cat, Logger: log, index: catalog.Index(cat)}
}

func (c *ItemsController) Register(r *gin.Engine) {
	r.GET("/api/items", c.list)
	r.GET("/api/items/:id", c.one)
	r.GET("/api/items/batch/:ids", c.batch)
}

func (c *ItemsController) list(ctx *gin.Context) {
	var filter *items.Tier
	if q := strings.TrimSpace(ctx.Query("classification")); q != "" {
		if !items.ValidTier(q) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown classification: " + q})
			return
		}
		t := items.Tier(q)
		filter = &t
	}

	recs := c.allRecords(ctx)
	if filter != nil {
		kept := recs[:0]
		for _, r := range recs {
			if r.Classification == *filter {
				kept = append(kept, r)
			}
		}
		recs = kept
	}

	ctx.JSON(http.StatusOK, gin.H{"count": len(recs), "items": recs})
}

func (c *ItemsController) one(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "item id must be numeric"})
		return
	}
	rec, ok := c.lookup(ctx, id)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown item id"})
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

func (c *ItemsController) batch(ctx *gin.Context) {
	raw := strings.Split(ctx.Param("ids"), ",")
	found := make([]items.ItemRecord, 0, len(raw))
	requested := 0
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		requested++
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "item id must be numeric: " + tok})
			return
		}
		if rec, ok := c.lookup(ctx, id); ok {
			found = append(found, rec)
		}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"requested": requested,
		"count":     len(found),
		"items":     found,
	})
}

// lookup resolves one id to a record; ids outside the catalog report false.
func (c *ItemsController) lookup(ctx *gin.Context, id int64) (items.ItemRecord, bool) {
	entry, inCatalog := c.index[id]
	if !inCatalog {
		return items.ItemRecord{}, false
	}
	rec, err := c.Repo.Get(ctx.Request.Context(), id)
	if err != nil {
		c.Logger.Warn("item read failed, serving placeholder", "id", id, "err", err)
		return items.PlaceholderRecord(entry), true
	}
	if rec == nil {
		return items.PlaceholderRecord(entry), true
	}
	return *rec, true
}

// allRecords merges persisted records with placeholders for the rest of the
// catalog, in catalog order.
func (c *ItemsController) allRecords(ctx *gin.Context) []items.ItemRecord {
	persisted, err := c.Repo.All(ctx.Request.Context())
	if err != nil {
		c.Logger.Warn("item list read failed, serving placeholders", "err", err)
		persisted = nil
	}
	byID := make(map[int64]items.ItemRecord, len(persisted))
	for _, r := range persisted {
		byID[r.ID] = r
	}

	out := make([]items.ItemRecord, 0, len(c.Catalog))
	for _, e := range c.Catalog {
		if r, ok := byID[e.ID]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, items.PlaceholderRecord(e))
	}
	return out
}
