package bitcoin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// esploraPageSize is the fixed page length of /block/:hash/txs/:start.
const esploraPageSize = 25

type esploraBlock struct {
	ID         string  `json:"id"`
	Height     uint64  `json:"height"`
	Timestamp  int64   `json:"timestamp"`
	MedianTime int64   `json:"mediantime"`
	TxCount    uint32  `json:"tx_count"`
	Size       uint32  `json:"size"`
	Weight     uint32  `json:"weight"`
	Difficulty float64 `json:"difficulty"`
}

type esploraTx struct {
	TxID string        `json:"txid"`
	Fee  uint64        `json:"fee"`
	Vin  []esploraVin  `json:"vin"`
	Vout []esploraVout `json:"vout"`
}

type esploraVin struct {
	TxID       string       `json:"txid"`
	Vout       uint32       `json:"vout"`
	Prevout    *esploraVout `json:"prevout"`
	IsCoinbase bool         `json:"is_coinbase"`
}

type esploraVout struct {
	ScriptPubKey        string `json:"scriptpubkey"`
	ScriptPubKeyType    string `json:"scriptpubkey_type"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address"`
	Value               uint64 `json:"value"`
}

// EsploraSource reads chain data from an Esplora-compatible REST API (blockstream.info, mempool.space).
type EsploraSource struct {
	client HTTPClient
}

// NewEsploraSource constructs a source over a configured HTTP client.
func NewEsploraSource(client HTTPClient) *EsploraSource {
	return &EsploraSource{client: client}
}

// TipHeight returns the current tip height.
func (s *EsploraSource) TipHeight(ctx context.Context) (uint64, error) {
	const path = "blocks/tip/height"
	text, err := s.client.GetText(ctx, "tip_height", path)
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, chain.Malformed("tip_height", s.client.URL(path), []byte(text), err)
	}
	return height, nil
}

// BlockHash resolves a height to a block hash.
func (s *EsploraSource) BlockHash(ctx context.Context, height uint64) (string, error) {
	path := fmt.Sprintf("block-height/%d", height)
	text, err := s.client.GetText(ctx, "block_hash", path)
	if err != nil {
		return "", err
	}
	if _, err := chainhash.NewHashFromStr(text); err != nil {
		return "", chain.Malformed("block_hash", s.client.URL(path), []byte(text), err)
	}
	return text, nil
}

// Block returns block detail. Esplora never embeds transactions.
func (s *EsploraSource) Block(ctx context.Context, hash string) (*model.BlockPayload, error) {
	path := "block/" + hash
	var blk esploraBlock
	if err := s.client.GetJSON(ctx, "block", path, &blk); err != nil {
		return nil, err
	}
	if blk.ID != hash {
		return nil, chain.Malformed("block", s.client.URL(path), nil, fmt.Errorf("block id %q does not match %q", blk.ID, hash))
	}
	return &model.BlockPayload{
		Hash:       blk.ID,
		Height:     blk.Height,
		TxCount:    blk.TxCount,
		Difficulty: blk.Difficulty,
		Time:       blk.Timestamp,
		MedianTime: blk.MedianTime,
		Size:       blk.Size,
		Weight:     blk.Weight,
	}, nil
}

// BlockTxs pages through /block/:hash/txs until txCount transactions are collected.
func (s *EsploraSource) BlockTxs(ctx context.Context, hash string, txCount uint32) ([]model.TxPayload, error) {
	txs := make([]model.TxPayload, 0, txCount)
	for start := 0; start < int(txCount); start += esploraPageSize {
		path := fmt.Sprintf("block/%s/txs/%d", hash, start)
		var page []esploraTx
		if err := s.client.GetJSON(ctx, "block_txs", path, &page); err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return nil, chain.Malformed("block_txs", s.client.URL(path), nil,
				fmt.Errorf("empty page at %d of %d transactions", start, txCount))
		}
		for _, tx := range page {
			txs = append(txs, txFromEsplora(tx))
		}
	}
	return txs, nil
}

func txFromEsplora(tx esploraTx) model.TxPayload {
	inputs := make([]model.InputPayload, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		if vin.IsCoinbase {
			inputs = append(inputs, model.InputPayload{Coinbase: true})
			continue
		}
		in := model.InputPayload{PrevTxID: vin.TxID, PrevVout: vin.Vout}
		if vin.Prevout != nil {
			value := vin.Prevout.Value
			in.PrevValue = &value
		}
		inputs = append(inputs, in)
	}

	outputs := make([]model.OutputPayload, 0, len(tx.Vout))
	for _, vout := range tx.Vout {
		out := model.OutputPayload{
			Value:      vout.Value,
			HasScript:  vout.ScriptPubKey != "",
			ScriptHex:  vout.ScriptPubKey,
			ScriptType: vout.ScriptPubKeyType,
		}
		if vout.ScriptPubKeyAddress != "" {
			out.Addresses = []string{vout.ScriptPubKeyAddress}
		}
		outputs = append(outputs, out)
	}

	return model.TxPayload{TxID: tx.TxID, Fee: tx.Fee, Inputs: inputs, Outputs: outputs}
}
