package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// Error codes returned in ErrorResponse.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type heightResponse struct {
	Height uint64 `json:"height"`
}

// blockInfoResponse keeps the field names the explorer frontend reads; avg_tx_count carries the block's tx count.
type blockInfoResponse struct {
	ID         int64     `json:"id"`
	Height     uint64    `json:"height"`
	Hash       string    `json:"hash"`
	TxCount    uint32    `json:"avg_tx_count"`
	Difficulty float64   `json:"difficulty"`
	BlockTime  int64     `json:"block_time"`
	Timestamp  time.Time `json:"timestamp"`
	Size       uint32    `json:"size"`
	Weight     uint32    `json:"weight"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	BlockHeight uint64 `json:"block_height"`
	Hash        string `json:"hash"`
	Btc         uint64 `json:"btc"`
	Fee         uint64 `json:"fee"`
	Time        int64  `json:"time"`
}

type inputResponse struct {
	ID             int64  `json:"id"`
	TransactionID  int64  `json:"transaction_id"`
	PreviousOutput string `json:"previous_output"`
	Value          uint64 `json:"value"`
}

type outputResponse struct {
	ID            int64  `json:"id"`
	TransactionID int64  `json:"transaction_id"`
	Address       string `json:"address"`
	Value         uint64 `json:"value"`
}

type blockDetailResponse struct {
	BlockInfo    blockInfoResponse     `json:"block_info"`
	Transactions []transactionResponse `json:"transactions"`
	Inputs       []inputResponse       `json:"inputs"`
	Outputs      []outputResponse      `json:"outputs"`
}

type offchainResponse struct {
	ID          int64     `json:"id"`
	BlockHeight uint64    `json:"block_height"`
	Price       float64   `json:"btc_price"`
	Sentiment   *float64  `json:"market_sentiment"`
	Volume      *float64  `json:"volume"`
	High        *float64  `json:"high"`
	Low         *float64  `json:"low"`
	Timestamp   time.Time `json:"timestamp"`
}

func newBlockInfoResponse(b model.BlockInfo) blockInfoResponse {
	return blockInfoResponse{
		ID:         b.ID,
		Height:     b.Height,
		Hash:       b.Hash,
		TxCount:    b.TxCount,
		Difficulty: b.Difficulty,
		BlockTime:  b.BlockTime,
		Timestamp:  b.Timestamp,
		Size:       b.Size,
		Weight:     b.Weight,
	}
}

func newBlockDetailResponse(
	info model.BlockInfo,
	txs []model.Transaction,
	inputs []model.TransactionInput,
	outputs []model.TransactionOutput,
) blockDetailResponse {
	resp := blockDetailResponse{
		BlockInfo:    newBlockInfoResponse(info),
		Transactions: make([]transactionResponse, 0, len(txs)),
		Inputs:       make([]inputResponse, 0, len(inputs)),
		Outputs:      make([]outputResponse, 0, len(outputs)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:          tx.ID,
			BlockHeight: tx.BlockHeight,
			Hash:        tx.Hash,
			Btc:         tx.Value,
			Fee:         tx.Fee,
			Time:        tx.Time.Unix(),
		})
	}
	for _, in := range inputs {
		resp.Inputs = append(resp.Inputs, inputResponse{
			ID:             in.ID,
			TransactionID:  in.TransactionID,
			PreviousOutput: in.PreviousOutput,
			Value:          in.Value,
		})
	}
	for _, out := range outputs {
		resp.Outputs = append(resp.Outputs, outputResponse{
			ID:            out.ID,
			TransactionID: out.TransactionID,
			Address:       out.Address,
			Value:         out.Value,
		})
	}
	return resp
}

func newOffchainResponse(s model.OffchainSample) offchainResponse {
	return offchainResponse{
		ID:          s.ID,
		BlockHeight: s.BlockHeight,
		Price:       s.Price,
		Sentiment:   s.Sentiment,
		Volume:      s.Volume,
		High:        s.High,
		Low:         s.Low,
		Timestamp:   s.Timestamp,
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	respondJSON(w, statusCode, ErrorResponse{Code: code, Message: message})
}
