package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

type (
	// MaxIDReader reports the highest surrogate id stored in a table, 0 when empty.
	MaxIDReader interface {
		MaxID(ctx context.Context, table model.Table) (int64, error)
	}
)

// Sequences hands out surrogate ids as max(existing)+1 per table.
// It is only correct while a single writer owns the tables; the sync guard provides that.
type Sequences struct {
	reader MaxIDReader

	mu   sync.Mutex
	next map[model.Table]int64
}

// NewSequences constructs Sequences seeded lazily from reader.
func NewSequences(reader MaxIDReader) *Sequences {
	return &Sequences{reader: reader, next: make(map[model.Table]int64)}
}

// Reserve returns the next id for table.
func (s *Sequences) Reserve(ctx context.Context, table model.Table) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.next[table]; ok {
		s.next[table] = n + 1
		return n, nil
	}

	maxID, err := s.reader.MaxID(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("seed %s id: %w", table, err)
	}
	s.next[table] = maxID + 2
	return maxID + 1, nil
}

// Reset drops cached counters so the next Reserve re-reads the store.
func (s *Sequences) Reset(tables ...model.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(tables) == 0 {
		s.next = make(map[model.Table]int64)
		return
	}
	for _, table := range tables {
		delete(s.next, table)
	}
}
