// Package portfolio provides the item store and the analytics service built
// on top of it.
package portfolio

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Triple-dylan/realglobal-engine/internal/domain"
)

// Store holds the two disjoint item collections: portfolio items (owned or
// otherwise tracked assets) and workspace items (candidates under
// consideration). An id lives in at most one collection at a time.
//
// All mutations go through the store's mutex, which is the single-writer
// discipline required because stats are recomputed from a full scan on every
// read. The store is an injectable object owned by the caller; there is no
// package-level singleton.
type Store struct {
	mu        sync.Mutex
	portfolio []domain.PortfolioItem
	workspace []domain.PortfolioItem
	log       zerolog.Logger
}

// NewStore creates an empty item store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		log: log.With().Str("service", "item_store").Logger(),
	}
}

// ItemPatch carries a partial update for a portfolio item. Nil fields are
// left untouched.
type ItemPatch struct {
	Title           *string
	PortfolioStatus *domain.Status
	Type            *domain.PropertyType
	Location        *domain.Location
	PurchasePrice   *float64
	CurrentValue    *float64
	MonthlyIncome   *float64
	Expenses        *float64
	MarketData      *domain.MarketData
	Alerts          []domain.PortfolioAlert
}

// AddToPortfolio inserts an item into the portfolio collection, removing any
// workspace entry with the same id so the mutual-exclusivity invariant holds.
// Returns the updated portfolio collection.
func (s *Store) AddToPortfolio(item domain.PortfolioItem) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspace = removeByID(s.workspace, item.ID)
	s.portfolio = removeByID(s.portfolio, item.ID)
	s.portfolio = append(s.portfolio, item)

	s.log.Debug().Str("id", item.ID).Str("status", string(item.PortfolioStatus)).Msg("Added item to portfolio")
	return copyItems(s.portfolio)
}

// RemoveFromPortfolio deletes an item by id. Removing an unknown id is a
// no-op, not an error.
func (s *Store) RemoveFromPortfolio(id string) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio = removeByID(s.portfolio, id)
	return copyItems(s.portfolio)
}

// UpdatePortfolioItem applies a partial update to the item with the given id.
// Updating an unknown id is a no-op.
func (s *Store) UpdatePortfolioItem(id string, patch ItemPatch) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.portfolio {
		if s.portfolio[i].ID != id {
			continue
		}
		applyPatch(&s.portfolio[i], patch)
		s.log.Debug().Str("id", id).Msg("Updated portfolio item")
		break
	}
	return copyItems(s.portfolio)
}

// AddToWorkspace inserts a candidate. Insertion is idempotent by id: if the
// id is already present the existing entry is preserved untouched. A
// portfolio entry with the same id is removed first.
func (s *Store) AddToWorkspace(item domain.PortfolioItem) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.workspace {
		if existing.ID == item.ID {
			return copyItems(s.workspace)
		}
	}
	s.portfolio = removeByID(s.portfolio, item.ID)
	s.workspace = append(s.workspace, item)

	s.log.Debug().Str("id", item.ID).Msg("Added item to workspace")
	return copyItems(s.workspace)
}

// RemoveFromWorkspace deletes a candidate by id. Unknown ids are a no-op.
func (s *Store) RemoveFromWorkspace(id string) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspace = removeByID(s.workspace, id)
	return copyItems(s.workspace)
}

// MoveToWorkspace demotes a portfolio item back to candidate status. The
// move is atomic from the caller's perspective: the item never appears in
// both collections. Moving an unknown id is a no-op.
func (s *Store) MoveToWorkspace(id string) []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.portfolio {
		if item.ID != id {
			continue
		}
		s.portfolio = append(s.portfolio[:i], s.portfolio[i+1:]...)
		item.PortfolioStatus = domain.StatusAnalyzing
		s.workspace = removeByID(s.workspace, id)
		s.workspace = append(s.workspace, item)
		s.log.Debug().Str("id", id).Msg("Moved item to workspace")
		break
	}
	return copyItems(s.workspace)
}

// PortfolioItems returns a copy of the portfolio collection.
func (s *Store) PortfolioItems() []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.portfolio)
}

// WorkspaceItems returns a copy of the workspace collection.
func (s *Store) WorkspaceItems() []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.workspace)
}

// OwnedItems returns a copy of the portfolio items with status "owned" —
// the input set for every stats computation.
func (s *Store) OwnedItems() []domain.PortfolioItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]domain.PortfolioItem, 0, len(s.portfolio))
	for _, item := range s.portfolio {
		if item.PortfolioStatus == domain.StatusOwned {
			owned = append(owned, item)
		}
	}
	return owned
}

func applyPatch(item *domain.PortfolioItem, patch ItemPatch) {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.PortfolioStatus != nil {
		item.PortfolioStatus = *patch.PortfolioStatus
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Location != nil {
		item.Location = patch.Location
	}
	if patch.PurchasePrice != nil {
		item.PurchasePrice = patch.PurchasePrice
	}
	if patch.CurrentValue != nil {
		item.CurrentValue = patch.CurrentValue
	}
	if patch.MonthlyIncome != nil {
		item.MonthlyIncome = patch.MonthlyIncome
	}
	if patch.Expenses != nil {
		item.Expenses = patch.Expenses
	}
	if patch.MarketData != nil {
		item.MarketData = patch.MarketData
	}
	if patch.Alerts != nil {
		item.Alerts = patch.Alerts
	}
}

func removeByID(items []domain.PortfolioItem, id string) []domain.PortfolioItem {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func copyItems(items []domain.PortfolioItem) []domain.PortfolioItem {
	out := make([]domain.PortfolioItem, len(items))
	copy(out, items)
	return out
}
