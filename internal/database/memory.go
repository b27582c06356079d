package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"banquetprep/internal/models"
)

// MemoryStore is an in-memory catalog. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	recipes   map[string]models.Recipe
	events    []models.Event
	documents map[string]models.BanquetOrder
	packs     map[string]models.VendorPack
}

// NewMemoryStore creates a catalog preloaded with data.
func NewMemoryStore(data Sample) *MemoryStore {
	s := &MemoryStore{
		recipes:   make(map[string]models.Recipe),
		documents: make(map[string]models.BanquetOrder),
		packs:     make(map[string]models.VendorPack),
	}
	for _, r := range data.Recipes {
		s.PutRecipe(r)
	}
	for _, e := range data.Events {
		s.PutEvent(e)
	}
	for _, d := range data.Documents {
		s.PutDocument(d)
	}
	for _, p := range data.Packs {
		s.PutVendorPack(p)
	}
	return s
}

// PutRecipe adds or replaces a recipe.
func (s *MemoryStore) PutRecipe(r models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.RecipeID == "" {
		r.RecipeID = uuid.NewString()
	}
	s.recipes[r.RecipeID] = r
}

// PutEvent appends an event.
func (s *MemoryStore) PutEvent(e models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	s.events = append(s.events, e)
}

// PutDocument adds or replaces a banquet event order.
func (s *MemoryStore) PutDocument(d models.BanquetOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[d.DocumentID] = d
}

// PutVendorPack adds or replaces the pack for an item.
func (s *MemoryStore) PutVendorPack(p models.VendorPack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packs[models.ItemKey(p.Item)] = p
}

// GetRecipe returns a recipe by ID.
func (s *MemoryStore) GetRecipe(ctx context.Context, recipeID string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, models.ErrNotFound)
	}
	return &r, nil
}

// ListRecipes returns every recipe ordered by name.
func (s *MemoryStore) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EventsOn returns the events on day in insertion order.
func (s *MemoryStore) EventsOn(ctx context.Context, day time.Time) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, e := range s.events {
		if e.OnDate(day) {
			out = append(out, e)
		}
	}
	return out, nil
}

// LoadDocument returns a banquet event order by document ID.
func (s *MemoryStore) LoadDocument(ctx context.Context, documentID string) (*models.BanquetOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, models.ErrNotFound)
	}
	return &d, nil
}

// VendorPacks returns every pack ordered by item.
func (s *MemoryStore) VendorPacks(ctx context.Context) ([]models.VendorPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VendorPack, 0, len(s.packs))
	for _, p := range s.packs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out, nil
}
