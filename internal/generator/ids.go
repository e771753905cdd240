package generator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IDLength is the number of hex characters in a document id.
const IDLength = 12

// maxIDAttempts bounds redraws on collision; hitting it means the id space is exhausted.
const maxIDAttempts = 64

// IDAllocator issues short document ids that are unique within a run.
// Ids are drawn from the run's Source and redrawn on collision.
type IDAllocator struct {
	src  *Source
	used map[string]struct{}
}

// NewIDAllocator creates an allocator drawing from src.
func NewIDAllocator(src *Source) *IDAllocator {
	return &IDAllocator{
		src:  src,
		used: make(map[string]struct{}),
	}
}

// Next returns a fresh id not issued before by this allocator.
func (a *IDAllocator) Next() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		u, err := uuid.NewRandomFromReader(a.src)
		if err != nil {
			return "", fmt.Errorf("draw id: %w", err)
		}
		// The first 6 bytes of a v4 UUID carry no version/variant bits.
		id := strings.ReplaceAll(u.String(), "-", "")[:IDLength]
		if _, taken := a.used[id]; taken {
			continue
		}
		a.used[id] = struct{}{}
		return id, nil
	}
	return "", ErrIDSpaceExhausted
}

// Issued reports how many ids have been handed out.
func (a *IDAllocator) Issued() int {
	return len(a.used)
}
