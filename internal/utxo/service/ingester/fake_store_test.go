package ingester

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// memoryStore is an in-memory Repository and SampleRepository.
type memoryStore struct {
	mu sync.Mutex

	heights  []model.BlockHeight
	blocks   []model.BlockInfo
	txs      []model.Transaction
	inputs   []model.TransactionInput
	outputs  []model.TransactionOutput
	samples  []model.OffchainSample
	failWith map[model.Table]error
	// maxIDFailures holds errors returned by the next MaxID call on a table, once each.
	maxIDFailures map[model.Table]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		failWith:      make(map[model.Table]error),
		maxIDFailures: make(map[model.Table]error),
	}
}

func (s *memoryStore) BlockInfoExists(_ context.Context, height uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blocks {
		if b.Height == height {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) MaxBlockHeight(context.Context) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxHeight uint64
	for _, b := range s.blocks {
		if b.Height > maxHeight {
			maxHeight = b.Height
		}
	}
	return maxHeight, len(s.blocks) > 0, nil
}

func (s *memoryStore) LatestObservedHeight(ctx context.Context) (uint64, bool, error) {
	s.mu.Lock()
	if n := len(s.heights); n > 0 {
		h := s.heights[n-1].Height
		s.mu.Unlock()
		return h, true, nil
	}
	s.mu.Unlock()
	return s.MaxBlockHeight(ctx)
}

func (s *memoryStore) MaxID(_ context.Context, table model.Table) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.maxIDFailures[table]; ok {
		delete(s.maxIDFailures, table)
		return 0, err
	}
	var ids []int64
	switch table {
	case model.TableBlockHeights:
		for _, r := range s.heights {
			ids = append(ids, r.ID)
		}
	case model.TableBlockInfo:
		for _, r := range s.blocks {
			ids = append(ids, r.ID)
		}
	case model.TableTransactions:
		for _, r := range s.txs {
			ids = append(ids, r.ID)
		}
	case model.TableTransactionInputs:
		for _, r := range s.inputs {
			ids = append(ids, r.ID)
		}
	case model.TableTransactionOutputs:
		for _, r := range s.outputs {
			ids = append(ids, r.ID)
		}
	case model.TableOffchainData:
		for _, r := range s.samples {
			ids = append(ids, r.ID)
		}
	}
	var maxID int64
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (s *memoryStore) InsertBlockHeight(_ context.Context, h model.BlockHeight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableBlockHeights]; err != nil {
		return err
	}
	s.heights = append(s.heights, h)
	return nil
}

func (s *memoryStore) InsertBlockInfo(_ context.Context, b model.BlockInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableBlockInfo]; err != nil {
		return err
	}
	s.blocks = append(s.blocks, b)
	return nil
}

func (s *memoryStore) InsertTransaction(_ context.Context, tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableTransactions]; err != nil {
		return err
	}
	s.txs = append(s.txs, tx)
	return nil
}

func (s *memoryStore) InsertTransactionInput(_ context.Context, in model.TransactionInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableTransactionInputs]; err != nil {
		return err
	}
	s.inputs = append(s.inputs, in)
	return nil
}

func (s *memoryStore) InsertTransactionOutput(_ context.Context, out model.TransactionOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableTransactionOutputs]; err != nil {
		return err
	}
	s.outputs = append(s.outputs, out)
	return nil
}

func (s *memoryStore) OffchainSampleByKey(_ context.Context, height uint64, price float64) (*model.OffchainSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sample := range s.samples {
		if sample.BlockHeight == height && sample.Price == price {
			found := sample
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) InsertOffchainSample(_ context.Context, sample model.OffchainSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failWith[model.TableOffchainData]; err != nil {
		return err
	}
	s.samples = append(s.samples, sample)
	return nil
}

func (s *memoryStore) UpdateOffchainSample(_ context.Context, sample model.OffchainSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.samples {
		if s.samples[i].ID == sample.ID {
			s.samples[i] = sample
			return nil
		}
	}
	return nil
}
