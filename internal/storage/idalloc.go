package storage

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// IDAllocator hands out the next identifier for one entity type. Neither
// implementation is safe across processes; the in-process mutex covers the
// single-process, single-writer contract this store is built for.
type IDAllocator interface {
	Next() (string, error)
}

// IDWidth is the zero padding applied to prefixed ids (STU-401, PAY-001).
const IDWidth = 3

// PrefixAllocator produces prefixed ids by scanning the existing ids of a
// table, taking the maximum numeric suffix and adding one. An empty table
// starts at the configured base. Ids are never reused: deletions leave holes.
type PrefixAllocator struct {
	mu     sync.Mutex
	prefix string
	base   int
	list   func() ([]string, error)
}

// NewPrefixAllocator builds an allocator for ids of the form
// <prefix><zero-padded n>. list must return every id currently in the table.
func NewPrefixAllocator(prefix string, base int, list func() ([]string, error)) *PrefixAllocator {
	return &PrefixAllocator{prefix: prefix, base: base, list: list}
}

func (a *PrefixAllocator) Next() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids, err := a.list()
	if err != nil {
		return "", fmt.Errorf("prefix allocator %q: %w", a.prefix, err)
	}
	max := a.base - 1
	for _, id := range ids {
		if !strings.HasPrefix(id, a.prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, a.prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", a.prefix, IDWidth, max+1), nil
}

// CounterAllocator keeps a persistent "entity:count" line per entity in one
// shared counter file and returns bare integers with no prefix.
type CounterAllocator struct {
	mu     *sync.Mutex
	path   string
	entity string
}

// counterFileMu serializes all allocators sharing one counter file path.
var (
	counterMuMu    sync.Mutex
	counterFileMus = map[string]*sync.Mutex{}
)

func counterMu(path string) *sync.Mutex {
	counterMuMu.Lock()
	defer counterMuMu.Unlock()
	mu, ok := counterFileMus[path]
	if !ok {
		mu = &sync.Mutex{}
		counterFileMus[path] = mu
	}
	return mu
}

func NewCounterAllocator(path, entity string) *CounterAllocator {
	return &CounterAllocator{mu: counterMu(path), path: path, entity: entity}
}

func (a *CounterAllocator) Next() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	counts, err := readCounterFile(a.path)
	if err != nil {
		return "", fmt.Errorf("counter allocator %q: %w", a.entity, err)
	}
	next := counts[a.entity] + 1
	counts[a.entity] = next
	if err := writeCounterFile(a.path, counts); err != nil {
		return "", fmt.Errorf("counter allocator %q: %w", a.entity, err)
	}
	return strconv.Itoa(next), nil
}

func readCounterFile(path string) (map[string]int, error) {
	counts := map[string]int{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return counts, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !IsRecordLine(line) {
			continue
		}
		entity, raw, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		counts[entity] = n
	}
	return counts, nil
}

func writeCounterFile(path string, counts map[string]int) error {
	entities := make([]string, 0, len(counts))
	for e := range counts {
		entities = append(entities, e)
	}
	sort.Strings(entities)

	var b strings.Builder
	for _, e := range entities {
		fmt.Fprintf(&b, "%s:%d\n", e, counts[e])
	}
	return replaceFile(path, []byte(b.String()))
}
