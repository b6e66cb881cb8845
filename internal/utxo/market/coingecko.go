// Package market samples off-chain market data: price, volume and market cap from CoinGecko,
// sentiment from the Fear & Greed index.
package market

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// marketChart is the CoinGecko /coins/{id}/market_chart body. Each point is [unix_ms, value].
type marketChart struct {
	Prices       [][]float64 `json:"prices"`
	MarketCaps   [][]float64 `json:"market_caps"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

type fearGreed struct {
	Data []struct {
		Value string `json:"value"`
	} `json:"data"`
}

// Source produces market snapshots.
type Source struct {
	prices    HTTPClient
	sentiment HTTPClient
	coinID    string
	currency  string
	now       func() time.Time
}

// Option customizes a Source.
type Option func(*Source)

// WithSentiment enables the Fear & Greed lookup through client.
func WithSentiment(client HTTPClient) Option {
	return func(s *Source) {
		s.sentiment = client
	}
}

// WithClock overrides the sampling clock.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		s.now = now
	}
}

// NewSource constructs a Source for coinID priced in currency.
func NewSource(prices HTTPClient, coinID, currency string, opts ...Option) *Source {
	s := &Source{
		prices:   prices,
		coinID:   coinID,
		currency: currency,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot fetches one market snapshot. The first element of every series is used;
// high and low span the whole price series.
func (s *Source) Snapshot(ctx context.Context) (*model.MarketSnapshot, error) {
	path := fmt.Sprintf("coins/%s/market_chart?vs_currency=%s&days=1", s.coinID, s.currency)
	var chart marketChart
	if err := s.prices.GetJSON(ctx, "market_chart", path, &chart); err != nil {
		return nil, err
	}

	price, ok := first(chart.Prices)
	if !ok {
		return nil, chain.Malformed("market_chart", s.prices.URL(path), nil, errors.New("empty price series"))
	}

	snap := &model.MarketSnapshot{
		Price:     price,
		SampledAt: s.now().UTC(),
	}
	if v, ok := first(chart.TotalVolumes); ok {
		snap.Volume = &v
	}
	if v, ok := first(chart.MarketCaps); ok {
		snap.MarketCap = &v
	}
	snap.High, snap.Low = bounds(chart.Prices)

	if s.sentiment != nil {
		sentiment, err := s.fearGreed(ctx)
		if err != nil {
			return nil, err
		}
		snap.Sentiment = sentiment
	}

	return snap, nil
}

func (s *Source) fearGreed(ctx context.Context) (*float64, error) {
	const path = "fng/?limit=1"
	var body fearGreed
	if err := s.sentiment.GetJSON(ctx, "fear_greed", path, &body); err != nil {
		return nil, err
	}
	if len(body.Data) == 0 {
		return nil, nil
	}
	v, err := strconv.ParseFloat(body.Data[0].Value, 64)
	if err != nil {
		return nil, chain.Malformed("fear_greed", s.sentiment.URL(path), []byte(body.Data[0].Value), err)
	}
	return &v, nil
}

func first(series [][]float64) (float64, bool) {
	if len(series) == 0 || len(series[0]) < 2 {
		return 0, false
	}
	return series[0][1], true
}

func bounds(series [][]float64) (high, low *float64) {
	for _, point := range series {
		if len(point) < 2 {
			continue
		}
		v := point[1]
		if high == nil || v > *high {
			h := v
			high = &h
		}
		if low == nil || v < *low {
			l := v
			low = &l
		}
	}
	return high, low
}
