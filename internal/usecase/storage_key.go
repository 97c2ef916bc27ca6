package usecase

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const storageRoot = "public"

// SanitizeSegment restricts s to [A-Za-z0-9._-] so it can never escape its
// place in the storage namespace. Other runes become '_', leading dots are
// dropped, and an empty result falls back to "file".
func SanitizeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

// OwnerPrefix is the namespace holding every object of ownerID.
func OwnerPrefix(ownerID string) string {
	return storageRoot + "/" + SanitizeSegment(ownerID) + "/"
}

func BuildStorageKey(ownerID string, millis int64, fileName string) string {
	return OwnerPrefix(ownerID) + strconv.FormatInt(millis, 10) + "-" + SanitizeSegment(fileName)
}

// PublicURL joins base and key with exactly one slash between them.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// keyClock hands out unix-millisecond stamps that strictly increase within
// the process.
type keyClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newKeyClock() *keyClock {
	return &keyClock{now: time.Now}
}

func (k *keyClock) Next() int64 {
	k.mu.Lock()
	defer k.mu.Unlock()

	ms := k.now().UnixMilli()
	if ms <= k.last {
		ms = k.last + 1
	}
	k.last = ms
	return ms
}
