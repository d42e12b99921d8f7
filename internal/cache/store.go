// Package cache holds the most recent carbon reading per region with a TTL
// matched to the provider's hourly update cadence.
package cache

import (
	"sync"
	"time"

	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
)

// DefaultTTL matches the EIA's hourly update cadence with margin.
const DefaultTTL = 30 * time.Minute

// Store is an in-process TTL cache keyed by region identifier.
//
// Puts are last-write-wins with no merging. Two overlapping fetches for the
// same region may both hit the provider and the second Put wins; given the
// read-mostly, short-TTL data this race is accepted rather than deduplicated.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	reading  carbon.CarbonReading
	storedAt time.Time
}

// NewStore creates a Store with the given TTL. A non-positive TTL falls
// back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached reading for a region if it is younger than the
// TTL. Expired and missing entries both report absence; expired entries are
// removed on the next Put, not by a background sweep.
func (s *Store) Get(region string) (carbon.CarbonReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[region]
	if !ok || s.now().Sub(e.storedAt) >= s.ttl {
		return carbon.CarbonReading{}, false
	}
	return e.reading, true
}

// Put stores a reading for a region, unconditionally replacing any
// existing entry and restarting its TTL.
func (s *Store) Put(region string, reading carbon.CarbonReading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[region] = entry{reading: reading, storedAt: s.now()}
}

// Len returns the number of entries currently held, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
