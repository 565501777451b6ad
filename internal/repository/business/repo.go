// Package business implements the business store over db.Store. Documents
// are JSON values under prefixed keys; view counters live beside them so
// increments stay atomic. Store-level predicates (equality, range,
// substring) are evaluated here; geo and open-now filtering belong to the
// search pipeline.
package business

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/localhive/placedex/internal/db"
	"github.com/localhive/placedex/internal/domain"
	dombiz "github.com/localhive/placedex/internal/domain/business"
)

// Repository persists and queries business records.
type Repository struct {
	store  db.Store
	prefix string
}

// New creates a business repository. keyPrefix namespaces all keys.
func New(store db.Store, keyPrefix string) *Repository {
	return &Repository{store: store, prefix: keyPrefix}
}

func (r *Repository) docKey(id string) string  { return r.prefix + "business:" + id }
func (r *Repository) viewKey(id string) string { return r.prefix + "views:business:" + id }

// Upsert stores a business record.
func (r *Repository) Upsert(ctx context.Context, b *dombiz.Business) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("validate business: %w", err)
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal business %s: %w", b.ID, err)
	}
	if err := r.store.Set(ctx, r.docKey(b.ID), data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Get loads a single business by id, folding in its view counter.
func (r *Repository) Get(ctx context.Context, id string) (dombiz.Business, error) {
	data, err := r.store.Get(ctx, r.docKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dombiz.Business{}, fmt.Errorf("business %s: %w", id, domain.ErrNotFound)
		}
		return dombiz.Business{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var b dombiz.Business
	if err := json.Unmarshal(data, &b); err != nil {
		return dombiz.Business{}, fmt.Errorf("unmarshal business %s: %w", id, err)
	}

	views, err := r.store.GetMulti(ctx, []string{r.viewKey(id)})
	if err != nil {
		return dombiz.Business{}, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(views) == 1 {
		b.ViewCount += parseCounter(views[0])
	}
	return b, nil
}

// Delete removes a business record and its view counter.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.docKey(id)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if err := r.store.Del(ctx, r.viewKey(id)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// IncrementViews bumps a business view counter and returns the new total.
func (r *Repository) IncrementViews(ctx context.Context, id string) (int64, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if _, err := r.store.IncrBy(ctx, r.viewKey(id), 1); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	// b.ViewCount already folds the pre-increment counter value.
	return b.ViewCount + 1, nil
}

// FindActive loads every record passing the store-level filters and returns
// it with the match count. The count reflects only these filters; distance
// and open-now discards downstream do not reduce it.
func (r *Repository) FindActive(ctx context.Context, f dombiz.Filters) ([]dombiz.Business, int, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]dombiz.Business, 0, len(all))
	for _, b := range all {
		if f.Match(&b) {
			matched = append(matched, b)
		}
	}
	return matched, len(matched), nil
}

// SuggestNames returns up to limit active businesses whose name contains
// text, ordered by name.
func (r *Repository) SuggestNames(ctx context.Context, text string, limit int) ([]dombiz.Business, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	out := make([]dombiz.Business, 0, limit)
	for _, b := range all {
		if !b.Active || !strings.Contains(strings.ToLower(b.Name), needle) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// loadAll scans all business documents and folds in view counters.
// Keys are sorted so candidate order is deterministic across requests;
// stable ranking ties break on this order.
func (r *Repository) loadAll(ctx context.Context) ([]dombiz.Business, error) {
	keys, err := r.store.Scan(ctx, r.docKey("*"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	sort.Strings(keys)

	docs, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	out := make([]dombiz.Business, 0, len(docs))
	viewKeys := make([]string, 0, len(docs))
	for _, data := range docs {
		if data == nil {
			continue // deleted between SCAN and GET
		}
		var b dombiz.Business
		if err := json.Unmarshal(data, &b); err != nil {
			continue // skip corrupt entries
		}
		out = append(out, b)
		viewKeys = append(viewKeys, r.viewKey(b.ID))
	}

	views, err := r.store.GetMulti(ctx, viewKeys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	for i := range views {
		out[i].ViewCount += parseCounter(views[i])
	}
	return out, nil
}

func parseCounter(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}
	var n int64
	for _, c := range data {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int64(c-'0')
	}
	return n
}
