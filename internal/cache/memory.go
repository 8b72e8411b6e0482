package cache

import (
	"context"
	"sync"
	"time"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
)

type memoryEntry struct {
	history   domain.MatchHistory
	expiresAt time.Time
}

// Memory is a process-local cache with per-entry expiry. Expired entries are
// swept on write at most once per sweep interval, and the entry count is
// capped by evicting the entry closest to expiry.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	now        func() time.Time
	maxEntries int
	lastSweep  time.Time
}

func NewMemory(now func() time.Time) *Memory {
	return &Memory{
		entries:    make(map[string]memoryEntry),
		now:        now,
		maxEntries: constants.MemoryCacheMaxEntries,
		lastSweep:  now(),
	}
}

func (m *Memory) Get(_ context.Context, key string) (*domain.MatchHistory, bool, error) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		return nil, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	h := entry.history
	return &h, true, nil
}

func (m *Memory) Set(_ context.Context, key string, history *domain.MatchHistory, ttl time.Duration) error {
	if history == nil || ttl <= 0 {
		return nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastSweep) >= constants.MemoryCacheSweepInterval {
		m.sweepLocked(now)
	}
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweepLocked(now)
		if len(m.entries) >= m.maxEntries {
			m.evictSoonestLocked()
		}
	}
	m.entries[key] = memoryEntry{
		history:   *history,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *Memory) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

func (m *Memory) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	for k, e := range m.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	delete(m.entries, victim)
}

func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
