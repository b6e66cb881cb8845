// Package ledger turns upstream block payloads into store rows and hands out surrogate ids.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

const coinbaseRef = "coinbase"

type (
	// AddressDecoder derives destination addresses from a hex scriptpubkey.
	AddressDecoder interface {
		Addresses(scriptHex string) ([]string, error)
	}
)

// Decomposer normalizes block payloads. It holds no state besides the optional decoder.
type Decomposer struct {
	decoder AddressDecoder
}

// NewDecomposer constructs a Decomposer. decoder may be nil, in which case outputs without
// upstream-reported addresses get an empty address.
func NewDecomposer(decoder AddressDecoder) *Decomposer {
	return &Decomposer{decoder: decoder}
}

// Decompose maps a payload to one summary row plus transaction, input and output rows.
// No ids are assigned.
func (d *Decomposer) Decompose(payload *model.BlockPayload) model.NormalizedBlock {
	blockTime := payload.Time
	stamp := payload.Time
	if payload.MedianTime != 0 {
		stamp = payload.MedianTime
	}
	timestamp := time.Unix(stamp, 0).UTC()

	block := model.NormalizedBlock{
		Block: model.BlockInfo{
			Height:     payload.Height,
			Hash:       payload.Hash,
			TxCount:    payload.TxCount,
			Difficulty: payload.Difficulty,
			BlockTime:  blockTime,
			Timestamp:  timestamp,
			Size:       payload.Size,
			Weight:     payload.Weight,
		},
		Transactions: make([]model.NormalizedTransaction, 0, len(payload.Txs)),
	}

	for _, tx := range payload.Txs {
		block.Transactions = append(block.Transactions, d.transaction(payload.Height, timestamp, tx))
	}
	return block
}

func (d *Decomposer) transaction(height uint64, timestamp time.Time, tx model.TxPayload) model.NormalizedTransaction {
	inputs := make([]model.TransactionInput, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		inputs = append(inputs, model.TransactionInput{
			PreviousOutput: previousOutput(in),
			Value:          inputValue(in),
		})
	}

	var total uint64
	outputs := make([]model.TransactionOutput, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		total += out.Value
		outputs = append(outputs, model.TransactionOutput{
			Address: d.address(out),
			Value:   out.Value,
		})
	}

	return model.NormalizedTransaction{
		Transaction: model.Transaction{
			BlockHeight: height,
			Hash:        tx.TxID,
			Value:       total,
			Fee:         tx.Fee,
			Time:        timestamp,
		},
		Inputs:  inputs,
		Outputs: outputs,
	}
}

func (d *Decomposer) address(out model.OutputPayload) string {
	if !out.HasScript {
		return ""
	}
	if len(out.Addresses) > 0 {
		return strings.Join(out.Addresses, ",")
	}
	if d.decoder == nil {
		return ""
	}
	addrs, err := d.decoder.Addresses(out.ScriptHex)
	if err != nil {
		return ""
	}
	return strings.Join(addrs, ",")
}

func previousOutput(in model.InputPayload) string {
	if in.Coinbase {
		return coinbaseRef
	}
	return fmt.Sprintf("%s:%d", in.PrevTxID, in.PrevVout)
}

func inputValue(in model.InputPayload) uint64 {
	if in.PrevValue == nil {
		return 0
	}
	return *in.PrevValue
}
