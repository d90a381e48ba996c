// Package memstore provides a store.Driver that keeps all records in
// process memory. It backs local simulator runs and tests where a Postgres
// instance is not available; the data does not survive a restart.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/config"
	"github.com/Surajr36/cricket-auction-simulator/internal/event"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func init() {
	store.Register("memory", openMemory)
}

// openMemory is the store.Driver for the "memory" backend.
func openMemory(_ context.Context, _ config.DatabaseConfig, clk clock.Clock) (*store.Repositories, error) {
	m := &memory{
		clk:      clk,
		auctions: make(map[string]store.Auction),
	}
	return &store.Repositories{
		Auctions: &AuctionRepo{m: m},
		Sales:    &SaleRepo{m: m},
		Events:   &EventStore{m: m},
		Closer:   closerFunc(func() error { return nil }),
		Ping:     func(context.Context) error { return nil },
	}, nil
}

// memory is the backing state shared by the three repositories.
type memory struct {
	mu       sync.RWMutex
	clk      clock.Clock
	auctions map[string]store.Auction
	sales    []store.Sale
	events   []event.Event
}

// AuctionRepo implements store.AuctionRepository in memory.
type AuctionRepo struct {
	m *memory
}

func (r *AuctionRepo) Create(_ context.Context, a *store.Auction) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, exists := r.m.auctions[a.ID]; exists {
		return fmt.Errorf("auction %s already exists", a.ID)
	}
	a.Status = "in_progress"
	a.StartedAt = r.m.clk.Now().UTC()
	r.m.auctions[a.ID] = *a
	return nil
}

func (r *AuctionRepo) GetByID(_ context.Context, id string) (*store.Auction, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	a, ok := r.m.auctions[id]
	if !ok {
		return nil, fmt.Errorf("auction %s not found", id)
	}
	return &a, nil
}

func (r *AuctionRepo) Complete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.auctions[id]
	if !ok || a.Status != "in_progress" {
		return fmt.Errorf("auction %s not found or already completed", id)
	}
	now := r.m.clk.Now().UTC()
	a.Status = "completed"
	a.CompletedAt = &now
	r.m.auctions[id] = a
	return nil
}

func (r *AuctionRepo) ListInProgress(_ context.Context) ([]store.Auction, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var result []store.Auction
	for _, a := range r.m.auctions {
		if a.Status == "in_progress" {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.Before(result[j].StartedAt) })
	return result, nil
}

// SaleRepo implements store.SaleRepository in memory.
type SaleRepo struct {
	m *memory
}

func (r *SaleRepo) Record(_ context.Context, s *store.Sale) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.sales {
		if existing.AuctionID == s.AuctionID && existing.PlayerID == s.PlayerID {
			return fmt.Errorf("player %s already recorded in auction %s", s.PlayerID, s.AuctionID)
		}
	}
	s.ID = uuid.NewString()
	s.SoldAt = r.m.clk.Now().UTC()
	r.m.sales = append(r.m.sales, *s)
	return nil
}

func (r *SaleRepo) ListByAuction(_ context.Context, auctionID string) ([]store.Sale, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var result []store.Sale
	for _, s := range r.m.sales {
		if s.AuctionID == auctionID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *SaleRepo) ListByTeam(_ context.Context, auctionID, teamID string) ([]store.Sale, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var result []store.Sale
	for _, s := range r.m.sales {
		if s.AuctionID == auctionID && s.TeamID != nil && *s.TeamID == teamID {
			result = append(result, s)
		}
	}
	return result, nil
}

// EventStore implements event.Store in memory.
type EventStore struct {
	m *memory
}

func (s *EventStore) Append(_ context.Context, events ...event.Event) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, e := range events {
		e.ID = uuid.NewString()
		e.CreatedAt = s.m.clk.Now().UTC()
		s.m.events = append(s.m.events, e)
	}
	return nil
}

func (s *EventStore) Load(_ context.Context, aggregateID string) ([]event.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var result []event.Event
	for _, e := range s.m.events {
		if e.AggregateID == aggregateID {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

func (s *EventStore) LoadByType(_ context.Context, eventType event.Type) ([]event.Event, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var result []event.Event
	for _, e := range s.m.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result, nil
}
