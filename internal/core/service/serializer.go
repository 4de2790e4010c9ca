package service

import (
	"hash/fnv"
	"sync"
)

const defaultShards = 16

// Serializer provides one exclusive section per collection name. Names are
// mapped onto a fixed set of mutexes by hashing, so every mutation of the
// same collection runs one at a time. Two different names may share a shard;
// that only costs concurrency, never correctness.
type Serializer struct {
	shards []sync.Mutex
}

// NewSerializer creates a Serializer with numShards locks.
// If numShards <= 0, defaultShards is used.
func NewSerializer(numShards int) *Serializer {
	if numShards <= 0 {
		numShards = defaultShards
	}
	return &Serializer{shards: make([]sync.Mutex, numShards)}
}

// Lock acquires the section for name and returns its release function.
func (s *Serializer) Lock(name string) (unlock func()) {
	mu := &s.shards[s.shardIndex(name)]
	mu.Lock()
	return mu.Unlock
}

// shardIndex maps a collection name deterministically to a shard.
func (s *Serializer) shardIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(s.shards)))
}
