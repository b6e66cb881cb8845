package model

import "time"

// Transaction is one on-chain transaction owned by a BlockInfo through BlockHeight.
// Value is the sum of the transaction's output values in satoshis.
type Transaction struct {
	ID          int64
	BlockHeight uint64
	Hash        string
	Value       uint64
	Fee         uint64
	Time        time.Time
}

// TransactionInput is a consumed previous output. PreviousOutput is "txid:vout" or "coinbase".
type TransactionInput struct {
	ID             int64
	TransactionID  int64
	PreviousOutput string
	Value          uint64
}

// TransactionOutput is a produced output. Address is empty when the output carries no destination script.
type TransactionOutput struct {
	ID            int64
	TransactionID int64
	Address       string
	Value         uint64
}
