package model

// BlockPayload is a fully fetched block as reported by an upstream source, before normalization.
// Amounts are satoshis; sources convert at their boundary.
type BlockPayload struct {
	Hash       string
	Height     uint64
	TxCount    uint32
	Difficulty float64
	Time       int64
	MedianTime int64
	Size       uint32
	Weight     uint32
	Txs        []TxPayload
}

// TxPayload is one upstream transaction.
type TxPayload struct {
	TxID    string
	Fee     uint64
	Inputs  []InputPayload
	Outputs []OutputPayload
}

// InputPayload references the output it spends. PrevValue is nil when the upstream did not resolve the prevout.
type InputPayload struct {
	Coinbase  bool
	PrevTxID  string
	PrevVout  uint32
	PrevValue *uint64
}

// OutputPayload is one upstream output. HasScript is false when the upstream omitted the destination script.
type OutputPayload struct {
	Value      uint64
	HasScript  bool
	ScriptHex  string
	ScriptType string
	Addresses  []string
}

// NormalizedBlock is a block decomposed into store rows. Ids are zero until the writer assigns them.
type NormalizedBlock struct {
	Block        BlockInfo
	Transactions []NormalizedTransaction
}

// NormalizedTransaction groups a transaction row with its inputs and outputs.
type NormalizedTransaction struct {
	Transaction Transaction
	Inputs      []TransactionInput
	Outputs     []TransactionOutput
}

// RowCount returns the number of rows the block decomposes into, the summary included.
func (b NormalizedBlock) RowCount() int {
	n := 1
	for _, tx := range b.Transactions {
		n += 1 + len(tx.Inputs) + len(tx.Outputs)
	}
	return n
}
