package model

// Coin identifies the mirrored chain.
type Coin string

// Network identifies the chain network (mainnet, testnet, ...).
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
	Signet  Network = "signet"
	Regtest Network = "regtest"
)

// Table names a relational table maintained by the mirror.
type Table string

const (
	TableBlockHeights       Table = "block_heights"
	TableBlockInfo          Table = "block_info"
	TableTransactions       Table = "transactions"
	TableTransactionInputs  Table = "transaction_inputs"
	TableTransactionOutputs Table = "transaction_outputs"
	TableOffchainData       Table = "offchain_data"
)

// Tables lists every table that carries a writer-assigned surrogate id.
var Tables = []Table{
	TableBlockHeights,
	TableBlockInfo,
	TableTransactions,
	TableTransactionInputs,
	TableTransactionOutputs,
	TableOffchainData,
}

// Valid reports whether t is one of the known tables.
func (t Table) Valid() bool {
	for _, known := range Tables {
		if t == known {
			return true
		}
	}
	return false
}
