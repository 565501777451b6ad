// Package category implements the category directory over db.Store with a
// read-through TTL cache for slug resolution.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/localhive/placedex/internal/db"
	"github.com/localhive/placedex/internal/domain"
	domcat "github.com/localhive/placedex/internal/domain/category"
)

// Directory resolves and lists categories. Slug lookups go through a TTL
// cache; entries are not invalidated when a category is rewritten, so a
// stale slug mapping can survive until its TTL lapses.
type Directory struct {
	store  db.Store
	prefix string
	ttl    time.Duration
	cache  *prometheus.CounterVec // labeled "hit" / "miss", may be nil
	logger *zap.Logger
}

// New creates a category directory with the given slug-cache TTL.
func New(store db.Store, keyPrefix string, ttl time.Duration, cache *prometheus.CounterVec, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{store: store, prefix: keyPrefix, ttl: ttl, cache: cache, logger: logger}
}

func (d *Directory) docKey(id string) string    { return d.prefix + "category:" + id }
func (d *Directory) slugKey(slug string) string { return d.prefix + "cache:category-slug:" + slug }

// Upsert stores a category. The slug cache is deliberately left untouched.
func (d *Directory) Upsert(ctx context.Context, c *domcat.Category) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate category: %w", err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal category %s: %w", c.ID, err)
	}
	if err := d.store.Set(ctx, d.docKey(c.ID), data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a category.
func (d *Directory) Delete(ctx context.Context, id string) error {
	if err := d.store.Del(ctx, d.docKey(id)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ResolveSlug maps a slug to its category, reading through the TTL cache.
// Returns ErrCategoryNotFound when no category carries the slug.
func (d *Directory) ResolveSlug(ctx context.Context, slug string) (domcat.Category, error) {
	if cached, err := d.store.Get(ctx, d.slugKey(slug)); err == nil {
		var c domcat.Category
		if err := json.Unmarshal(cached, &c); err == nil {
			d.count("hit")
			return c, nil
		}
		d.logger.Warn("corrupt slug cache entry", zap.String("slug", slug))
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return domcat.Category{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	d.count("miss")

	all, err := d.loadAll(ctx)
	if err != nil {
		return domcat.Category{}, err
	}
	for _, c := range all {
		if c.Slug != slug {
			continue
		}
		if data, err := json.Marshal(&c); err == nil {
			if err := d.store.SetWithTTL(ctx, d.slugKey(slug), data, d.ttl); err != nil {
				d.logger.Warn("slug cache write failed", zap.String("slug", slug), zap.Error(err))
			}
		}
		return c, nil
	}
	return domcat.Category{}, fmt.Errorf("slug %q: %w", slug, domain.ErrCategoryNotFound)
}

// Search returns up to limit categories whose name or description contains
// text, ordered by name.
func (d *Directory) Search(ctx context.Context, text string, limit int) ([]domcat.Category, error) {
	all, err := d.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	out := make([]domcat.Category, 0, limit)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (d *Directory) loadAll(ctx context.Context) ([]domcat.Category, error) {
	keys, err := d.store.Scan(ctx, d.docKey("*"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	sort.Strings(keys)

	docs, err := d.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	out := make([]domcat.Category, 0, len(docs))
	for _, data := range docs {
		if data == nil {
			continue
		}
		var c domcat.Category
		if err := json.Unmarshal(data, &c); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (d *Directory) count(result string) {
	if d.cache != nil {
		d.cache.WithLabelValues(result).Inc()
	}
}
