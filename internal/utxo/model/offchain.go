package model

import "time"

// OffchainSample is a market snapshot tied to a chain height. (BlockHeight, Price) is the logical key.
type OffchainSample struct {
	ID          int64
	BlockHeight uint64
	Price       float64
	Sentiment   *float64
	Volume      *float64
	High        *float64
	Low         *float64
	Timestamp   time.Time
}

// MarketSnapshot is what a market data source reports for one sampling round.
type MarketSnapshot struct {
	Price     float64
	Volume    *float64
	MarketCap *float64
	High      *float64
	Low       *float64
	Sentiment *float64
	SampledAt time.Time
}
