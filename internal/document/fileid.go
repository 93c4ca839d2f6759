package document

import (
	"sync"

	"github.com/google/uuid"
)

// FileID is the 16-byte identifier stored in the FileId record.
type FileID [16]byte

// FileIDGenerator supplies file ids to Build.
type FileIDGenerator interface {
	Generate() FileID
}

// RandomFileIDs generates random (version 4 UUID) file ids.
//
// Thread-safety: RandomFileIDs is stateless and safe for concurrent use.
type RandomFileIDs struct{}

// Generate returns a fresh random id.
// Panics if the system randomness source fails.
func (RandomFileIDs) Generate() FileID {
	return FileID(uuid.Must(uuid.NewRandom()))
}

// FixedFileIDs returns predetermined ids for testing.
//
// Thread-safety: FixedFileIDs is safe for concurrent use via internal mutex.
type FixedFileIDs struct {
	mu  sync.Mutex
	ids []FileID
	idx int
}

// NewFixedFileIDs creates a generator that returns ids in order.
// With a single id it returns that id forever.
func NewFixedFileIDs(ids ...FileID) *FixedFileIDs {
	return &FixedFileIDs{ids: ids}
}

// Generate returns the next predetermined id.
//
// Panics if all ids have been consumed, which means the test built more
// documents than it planned for.
func (g *FixedFileIDs) Generate() FileID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.ids) == 1 {
		return g.ids[0]
	}
	if g.idx >= len(g.ids) {
		panic("FixedFileIDs: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
