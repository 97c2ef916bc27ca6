package dedupe

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryDeduper keeps recently claimed ids in a size-bounded LRU whose entries
// expire after the window. It only dedupes within one process.
type MemoryDeduper struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, time.Time]
	now   func() time.Time
}

func NewMemoryDeduper(size int, window time.Duration) *MemoryDeduper {
	if size <= 0 {
		size = 4096
	}
	return &MemoryDeduper{
		cache: expirable.NewLRU[string, time.Time](size, nil, window),
		now:   time.Now,
	}
}

func (d *MemoryDeduper) Claim(ctx context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cache.Contains(id) {
		return false, nil
	}
	d.cache.Add(id, d.now())
	return true, nil
}

func (d *MemoryDeduper) Release(ctx context.Context, id string) error {
	d.mu.Lock()
	d.cache.Remove(id)
	d.mu.Unlock()
	return nil
}
