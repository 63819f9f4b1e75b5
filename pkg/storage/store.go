package storage

import (
	"slices"
	"strings"
	"sync"

	"github.com/Await-0x/RealmsWorld/pkg/types"
)

type storedSnapshot struct {
	snapshot   *types.CollectionSnapshot
	generation uint64
}

// Store holds the latest snapshot of every collection. Snapshots are
// replaced whole and never modified after Upsert, so readers may keep
// the pointer they got from Get.
//
// Every stored snapshot bumps version; the snapshot keeps the version it
// was stored at as its generation.
type Store struct {
	mu          sync.RWMutex
	collections map[string]storedSnapshot
	version     uint64
	saved       uint64
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string]storedSnapshot),
	}
}

func (s *Store) Get(id string) (*types.CollectionSnapshot, bool) {
	snapshot, _, ok := s.Lookup(id)
	return snapshot, ok
}

// Lookup returns the snapshot together with its generation. A collection
// gets a new generation on every upsert.
func (s *Store) Lookup(id string) (*types.CollectionSnapshot, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.collections[types.NormalizeId(id)]
	return stored.snapshot, stored.generation, ok
}

// Upsert skips snapshots without a collection id and returns the ids stored.
func (s *Store) Upsert(snapshots ...types.CollectionSnapshot) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(snapshots))
	for i := range snapshots {
		snapshot := snapshots[i]
		id := snapshot.Id()
		if id == "" {
			continue
		}
		s.version++
		s.collections[id] = storedSnapshot{snapshot: &snapshot, generation: s.version}
		ids = append(ids, id)
	}
	return ids
}

// All returns the snapshots ordered by collection id.
func (s *Store) All() []types.CollectionSnapshot {
	snapshots, _ := s.Snapshot()
	return snapshots
}

// Snapshot returns All together with the version it reflects, to be
// handed to MarkSaved once written.
func (s *Store) Snapshot() ([]types.CollectionSnapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.CollectionSnapshot, 0, len(s.collections))
	for _, stored := range s.collections {
		result = append(result, *stored.snapshot)
	}
	slices.SortFunc(result, func(a, b types.CollectionSnapshot) int {
		return strings.Compare(a.Id(), b.Id())
	})
	return result, s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections)
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != s.saved
}

// MarkSaved records that everything up to version is on disk. Upserts
// made after that version keep the store dirty.
func (s *Store) MarkSaved(version uint64) {
	s.mu.Lock()
	s.saved = max(s.saved, min(version, s.version))
	s.mu.Unlock()
}
