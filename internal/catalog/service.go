// Package catalog serves the item catalog through a small LRU cache in front
// of the store. The catalog is read on every draw and changes rarely.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/logger"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/singleflight"

	"dailydraw/internal/models"
	"dailydraw/internal/storage"
)

const (
	DefaultCacheSize = 128

	allItemsKey = "items:all"
)

var ErrInvalidItem = errors.New("invalid item")

// Service is the cached catalog.
type Service struct {
	store storage.Catalog
	cache *lru.Cache
	group singleflight.Group
	// gen is bumped by Purge; fills started before a purge do not write back.
	gen atomic.Uint64
}

// NewService wraps store with a cache holding up to cacheSize entries.
func NewService(store storage.Catalog, cacheSize int) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create catalog cache: %w", err)
	}
	return &Service{store: store, cache: cache}, nil
}

// ListAll returns every item ordered by id. Callers get their own copy.
func (s *Service) ListAll(ctx context.Context) ([]models.Item, error) {
	if cached, ok := s.cache.Get(allItemsKey); ok {
		return cloneItems(cached.([]models.Item)), nil
	}

	// concurrent misses share one store read
	gen := s.gen.Load()
	v, err, _ := s.group.Do(allItemsKey, func() (any, error) {
		items, err := s.store.ListItems(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.addIfCurrent(gen, allItemsKey, items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneItems(v.([]models.Item)), nil
}

// GetByID returns one item or an error wrapping storage.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	key := itemKey(id)
	if cached, ok := s.cache.Get(key); ok {
		item := cached.(models.Item)
		return &item, nil
	}

	gen := s.gen.Load()
	v, err, _ := s.group.Do(key, func() (any, error) {
		item, err := s.store.GetItem(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		s.addIfCurrent(gen, key, *item)
		return *item, nil
	})
	if err != nil {
		return nil, err
	}
	item := v.(models.Item)
	return &item, nil
}

// Search fuzzy-matches item names, best match first.
func (s *Service) Search(ctx context.Context, term string) ([]models.Item, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return items, nil
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	matches := fuzzy.Find(term, names)

	found := make([]models.Item, 0, len(matches))
	for _, match := range matches {
		found = append(found, items[match.Index])
	}
	return found, nil
}

// Seed inserts the items that are not in the store yet.
func (s *Service) Seed(ctx context.Context, items []models.Item) (int, error) {
	inserted, err := s.store.SeedItems(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	if inserted > 0 {
		s.Purge()
		logger.Infof("Seeded %d catalog items", inserted)
	} else {
		logger.Info("Catalog already seeded, nothing to insert")
	}
	return inserted, nil
}

// Add appends one item to the catalog.
func (s *Service) Add(ctx context.Context, item models.Item) (*models.Item, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if !item.Rarity.Valid() {
		return nil, fmt.Errorf("%w: unknown rarity %q", ErrInvalidItem, item.Rarity)
	}

	created, err := s.store.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}
	s.Purge()
	logger.Infof("Added catalog item %d (%s, %s)", created.ID, created.Name, created.Rarity)
	return created, nil
}

// Purge drops every cached entry. Fills already in flight are discarded
// rather than cached.
func (s *Service) Purge() {
	s.gen.Add(1)
	s.group.Forget(allItemsKey)
	s.cache.Purge()
}

func (s *Service) addIfCurrent(gen uint64, key string, value any) {
	if s.gen.Load() != gen {
		return
	}
	s.cache.Add(key, value)
}

func itemKey(id int64) string {
	return "item:" + strconv.FormatInt(id, 10)
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	copy(out, items)
	return out
}
