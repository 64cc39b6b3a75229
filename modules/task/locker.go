package task

import (
	"sort"
	"sync"
)

// entityLocker serializes read-validate-write sequences per entity key.
// Operations touching disjoint keys never block each other; operations
// sharing a key run one at a time.
type entityLocker struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newEntityLocker() *entityLocker {
	return &entityLocker{entries: make(map[string]*lockEntry)}
}

// Acquire locks every given key and returns a release function. Keys are
// deduplicated and locked in sorted order so two operations sharing keys
// cannot deadlock.
func (l *entityLocker) Acquire(keys ...string) func() {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	held := make([]*lockEntry, 0, len(sorted))
	for _, k := range sorted {
		l.mu.Lock()
		e := l.entries[k]
		if e == nil {
			e = &lockEntry{}
			l.entries[k] = e
		}
		e.refs++
		l.mu.Unlock()

		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
			}
			l.mu.Lock()
			for i, k := range sorted {
				held[i].refs--
				if held[i].refs == 0 {
					delete(l.entries, k)
				}
			}
			l.mu.Unlock()
		})
	}
}

func taskKey(id string) string { return "task:" + id }
func userKey(id string) string { return "user:" + id }
