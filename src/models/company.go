package models

// MCompanyInfo holds descriptive metadata for a ticker.
type MCompanyInfo struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Industry      string  `json:"industry"`
	Description   string  `json:"description"`
	Website       string  `json:"website"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"` // percent
	Beta          float64 `json:"beta"`
	EPS           float64 `json:"eps"`
	High52Week    float64 `json:"52_week_high"`
	Low52Week     float64 `json:"52_week_low"`
}

// -----------------------------------------------------------------------------

// MNewsItem is a single news article reference for a ticker.
type MNewsItem struct {
	Title         string `json:"title"`
	PublishedDate string `json:"published_date"` // YYYY-MM-DD
	Source        string `json:"source"`
	URL           string `json:"url"`
	Summary       string `json:"summary"`
}

// -----------------------------------------------------------------------------

// MIndexQuote is the latest level of a market index plus its day change.
type MIndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_pct"`
}
