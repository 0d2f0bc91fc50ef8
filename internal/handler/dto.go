package handler

type ArticleResponse struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
	PublishedAt    string   `json:"published_at"`
	Summary        string   `json:"summary"`
	SentimentLabel string   `json:"sentiment_label,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

type NewsResponse struct {
	Symbol          string            `json:"symbol"`
	Start           string            `json:"start"`
	End             string            `json:"end"`
	Articles        []ArticleResponse `json:"articles"`
	DaysWithoutNews []string          `json:"days_without_news"`
}

type CandleResponse struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type HistoricalResponse struct {
	Symbol      string           `json:"symbol"`
	Candles     []CandleResponse `json:"candles"`
	TradingDays []string         `json:"trading_days"`
}

type SymbolMatchResponse struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
