package stateright

import (
	"sync"
	"sync/atomic"
)

// Number of shards in the fingerprint registry. Must be a power of two.
const registryShards = 64

// A back reference from a discovered state to the state it was discovered
// from. Walking these references recovers the action sequence that reaches a
// state from an initial state.
type trace[A any] struct {
	prev   Fingerprint
	action A
	init   bool
}

// The registry is the shared set of fingerprints ever discovered during a
// run.
//
// Insertion is the single point of truth for state ownership: the worker
// whose insert first adds a fingerprint owns the state and is responsible for
// expanding it, any later insert of the same fingerprint reports a duplicate.
// The set is sharded by the low fingerprint bits so that concurrent inserts
// rarely contend on the same lock.
type registry[A any] struct {
	shards [registryShards]registryShard[A]
	size   atomic.Int64
}

type registryShard[A any] struct {
	mu      sync.Mutex
	entries map[Fingerprint]trace[A]
}

func newRegistry[A any]() *registry[A] {
	r := &registry[A]{}
	for i := range r.shards {
		r.shards[i].entries = make(map[Fingerprint]trace[A])
	}
	return r
}

func (r *registry[A]) shard(fp Fingerprint) *registryShard[A] {
	return &r.shards[uint64(fp)&(registryShards-1)]
}

// Insert the fingerprint with its back reference if it is absent.
//
// Returns true if the fingerprint was absent, transferring ownership of the
// state to the caller. Returns false if it was already present; the existing
// back reference is kept.
func (r *registry[A]) insert(fp Fingerprint, tr trace[A]) bool {
	s := r.shard(fp)
	s.mu.Lock()
	if _, ok := s.entries[fp]; ok {
		s.mu.Unlock()
		return false
	}
	s.entries[fp] = tr
	s.mu.Unlock()
	r.size.Add(1)
	return true
}

// Look up the back reference recorded for the fingerprint.
func (r *registry[A]) lookup(fp Fingerprint) (trace[A], bool) {
	s := r.shard(fp)
	s.mu.Lock()
	tr, ok := s.entries[fp]
	s.mu.Unlock()
	return tr, ok
}

// The number of fingerprints ever inserted.
func (r *registry[A]) len() int {
	return int(r.size.Load())
}
