package bitcoin

import "github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"

// prevoutResolver caches output values seen earlier in the same block so inputs spending them
// can be valued without another upstream call.
type prevoutResolver struct {
	local map[string][]uint64
}

func newPrevoutResolver() *prevoutResolver {
	return &prevoutResolver{local: make(map[string][]uint64)}
}

func (r *prevoutResolver) Seed(txid string, outputs []model.OutputPayload) {
	values := make([]uint64, len(outputs))
	for i, out := range outputs {
		values[i] = out.Value
	}
	r.local[txid] = values
}

func (r *prevoutResolver) Resolve(txid string, vout uint32) (uint64, bool) {
	values, ok := r.local[txid]
	if !ok || int(vout) >= len(values) {
		return 0, false
	}
	return values[vout], true
}

// resolveInBlock fills prevout values for inputs spending earlier outputs of the same block and
// derives the fee of every transaction whose inputs all resolved.
func resolveInBlock(txs []model.TxPayload) {
	resolver := newPrevoutResolver()
	for i := range txs {
		tx := &txs[i]
		var in uint64
		resolved := len(tx.Inputs) > 0
		for j := range tx.Inputs {
			input := &tx.Inputs[j]
			if input.Coinbase {
				resolved = false
				continue
			}
			if input.PrevValue == nil {
				if value, ok := resolver.Resolve(input.PrevTxID, input.PrevVout); ok {
					input.PrevValue = &value
				}
			}
			if input.PrevValue == nil {
				resolved = false
				continue
			}
			in += *input.PrevValue
		}

		var out uint64
		for _, o := range tx.Outputs {
			out += o.Value
		}
		if resolved && tx.Fee == 0 && in >= out {
			tx.Fee = in - out
		}
		resolver.Seed(tx.TxID, tx.Outputs)
	}
}
