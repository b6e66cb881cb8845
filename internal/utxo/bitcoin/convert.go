// Package bitcoin implements Bitcoin upstream sources: an Esplora-style REST API and a bitcoind JSON-RPC node.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// PayloadFromVerbose maps a getblock verbosity 2 result into a block payload with embedded transactions.
// bitcoind does not report prevout values or fees at this verbosity; only inputs spending outputs of
// the same block get a value, and only their transactions a fee.
func PayloadFromVerbose(src *btcjson.GetBlockVerboseTxResult) (*model.BlockPayload, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s height: %w", src.Hash, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return nil, fmt.Errorf("block %d size overflow: %w", src.Height, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return nil, fmt.Errorf("block %d weight overflow: %w", src.Height, err)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return nil, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	txs := make([]model.TxPayload, 0, len(src.Tx))
	for _, tx := range src.Tx {
		payload, err := txFromRaw(tx)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", src.Height, err)
		}
		txs = append(txs, payload)
	}
	resolveInBlock(txs)

	return &model.BlockPayload{
		Hash:       src.Hash,
		Height:     height,
		TxCount:    txCount,
		Difficulty: src.Difficulty,
		Time:       src.Time,
		Size:       size,
		Weight:     weight,
		Txs:        txs,
	}, nil
}

func txFromRaw(tx btcjson.TxRawResult) (model.TxPayload, error) {
	inputs := make([]model.InputPayload, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		if vin.IsCoinBase() {
			inputs = append(inputs, model.InputPayload{Coinbase: true})
			continue
		}
		inputs = append(inputs, model.InputPayload{PrevTxID: vin.Txid, PrevVout: vin.Vout})
	}

	outputs := make([]model.OutputPayload, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return model.TxPayload{}, fmt.Errorf("tx %s output %d value: %w", tx.Txid, idx, err)
		}
		var addresses []string
		switch {
		case len(vout.ScriptPubKey.Addresses) > 0:
			addresses = append(addresses, vout.ScriptPubKey.Addresses...)
		case vout.ScriptPubKey.Address != "":
			addresses = []string{vout.ScriptPubKey.Address}
		}
		outputs = append(outputs, model.OutputPayload{
			Value:      value,
			HasScript:  vout.ScriptPubKey.Hex != "",
			ScriptHex:  vout.ScriptPubKey.Hex,
			ScriptType: vout.ScriptPubKey.Type,
			Addresses:  addresses,
		})
	}

	return model.TxPayload{TxID: tx.Txid, Inputs: inputs, Outputs: outputs}, nil
}
