package aggregator

import (
	"hash/fnv"
	"sort"
	"sync"

	"github.com/hxuan190/swap-router/internal/pool"
)

const numShards = 16

// poolRegistry indexes the specs of the live snapshot by UID. Lookups from
// the HTTP layer take a shard lock only.
type poolRegistry struct {
	shards [numShards]registryShard
}

type registryShard struct {
	mu    sync.RWMutex
	specs map[string]pool.Spec
}

func newPoolRegistry(specs []pool.Spec) *poolRegistry {
	r := &poolRegistry{}
	for i := 0; i < numShards; i++ {
		r.shards[i].specs = make(map[string]pool.Spec)
	}
	for _, spec := range specs {
		r.Set(spec)
	}
	return r
}

func (r *poolRegistry) shard(uid string) *registryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(uid))
	return &r.shards[h.Sum32()%numShards]
}

func (r *poolRegistry) Get(uid string) (pool.Spec, bool) {
	s := r.shard(uid)
	s.mu.RLock()
	spec, ok := s.specs[uid]
	s.mu.RUnlock()
	return spec, ok
}

func (r *poolRegistry) Set(spec pool.Spec) {
	s := r.shard(spec.UID)
	s.mu.Lock()
	s.specs[spec.UID] = spec
	s.mu.Unlock()
}

func (r *poolRegistry) Len() int {
	total := 0
	for i := 0; i < numShards; i++ {
		r.shards[i].mu.RLock()
		total += len(r.shards[i].specs)
		r.shards[i].mu.RUnlock()
	}
	return total
}

// All returns every spec sorted by UID.
func (r *poolRegistry) All() []pool.Spec {
	out := make([]pool.Spec, 0, r.Len())
	for i := 0; i < numShards; i++ {
		r.shards[i].mu.RLock()
		for _, spec := range r.shards[i].specs {
			out = append(out, spec)
		}
		r.shards[i].mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}
