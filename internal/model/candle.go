package model

import "time"

// Candle is one OHLCV bar from the historical-price collaborator.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// SymbolMatch is one hit from a stock symbol search.
type SymbolMatch struct {
	Symbol      string
	Description string
	Type        string
}
