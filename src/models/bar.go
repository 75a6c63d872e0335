package models

// MOHLCVBar represents one price/volume bar as delivered by the data source.
// High >= max(Open, Close) and Low <= min(Open, Close) are expected but not
// enforced: upstream data may violate them and the analytics must not crash.
type MOHLCVBar struct {
	Symbol    string  `json:"symbol"`
	Timestamp int64   `json:"timestamp"` // Unix seconds, UTC
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}
