package yahoo

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"stock-insight/src/models"
)

// -----------------------------------------------------------------------------

// stubNetwork serves canned payloads keyed by URL substring.
type stubNetwork struct {
	payloads map[string]string
}

func (n *stubNetwork) Get(url string, params map[string]string) ([]byte, error) {
	for key, payload := range n.payloads {
		if strings.Contains(url, key) {
			return []byte(payload), nil
		}
	}
	return nil, fmt.Errorf("no stub for %s", url)
}

func testSource(payloads map[string]string) *YahooFinanceSource {
	cfg := &models.MConfig{
		Name:     "test",
		LogLevel: "ERROR",
		Network: models.MNetworkConfig{
			RequestTimeout:     5,
			MaxRetries:         0,
			ConcurrentRequests: 2,
		},
		DataSource: models.MDataSourceConfig{
			Name:        "yahoo",
			HistoryDays: 5,
			Interval:    "1d",
			NewsLimit:   2,
		},
	}
	return NewYahooFinanceSource(cfg, &stubNetwork{payloads: payloads})
}

// -----------------------------------------------------------------------------

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "regularMarketPrice": 104.0, "chartPreviousClose": 100.0},
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {"quote": [{
        "open":   [100.0, 102.0, null],
        "high":   [103.0, 104.0, 106.0],
        "low":    [ 99.0, 101.0, 103.0],
        "close":  [102.0, 103.0, 104.0],
        "volume": [1000.0, 1100.0, 1200.0]
      }]}
    }],
    "error": null
  }
}`

func TestFetchHistoryParsesBars(t *testing.T) {
	s := testSource(map[string]string{"/v8/finance/chart/AAPL": chartPayload})

	history, err := s.FetchHistory([]string{"AAPL"})
	if err != nil {
		t.Fatalf("FetchHistory failed: %v", err)
	}

	bars := history["AAPL"]
	// The third point has a null open and is dropped.
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Close != 102 || bars[0].High != 103 || bars[0].Low != 99 || bars[0].Volume != 1000 {
		t.Fatalf("bar 0 mismatch: %+v", bars[0])
	}
	if bars[0].Timestamp >= bars[1].Timestamp {
		t.Fatalf("bars not sorted by timestamp")
	}
	if bars[0].Symbol != "AAPL" {
		t.Fatalf("symbol not set: %+v", bars[0])
	}
}

// -----------------------------------------------------------------------------

func TestFetchHistoryAPIError(t *testing.T) {
	payload := `{"chart": {"result": [], "error": {"code": "Not Found", "description": "no data"}}}`
	s := testSource(map[string]string{"/v8/finance/chart/": payload})

	if _, err := s.FetchHistory([]string{"NOPE"}); err == nil {
		t.Fatalf("expected error when every fetch fails")
	}
}

// -----------------------------------------------------------------------------

const summaryPayload = `{
  "quoteSummary": {
    "result": [{
      "assetProfile": {"sector": "Technology", "industry": "Consumer Electronics",
                       "longBusinessSummary": "Designs devices.", "website": "https://example.com"},
      "price": {"longName": "Apple Inc.", "marketCap": {"raw": 3000000000000}},
      "summaryDetail": {"trailingPE": {"raw": 30.5}, "dividendYield": {"raw": 0.0055},
                        "beta": {"raw": 1.25}, "fiftyTwoWeekHigh": {"raw": 200}, "fiftyTwoWeekLow": {"raw": 150}},
      "defaultKeyStatistics": {"trailingEps": {"raw": 6.1}}
    }],
    "error": null
  }
}`

func TestFetchCompanyInfo(t *testing.T) {
	s := testSource(map[string]string{"/v10/finance/quoteSummary/AAPL": summaryPayload})

	info, err := s.FetchCompanyInfo("AAPL")
	if err != nil {
		t.Fatalf("FetchCompanyInfo failed: %v", err)
	}

	if info.Name != "Apple Inc." || info.Sector != "Technology" {
		t.Fatalf("profile mismatch: %+v", info)
	}
	if info.PERatio != 30.5 || info.Beta != 1.25 {
		t.Fatalf("ratios mismatch: %+v", info)
	}
	// Yield arrives as a fraction and is reported in percent.
	if math.Abs(info.DividendYield-0.55) > 1e-9 {
		t.Fatalf("dividend yield = %f, want 0.55", info.DividendYield)
	}
}

// -----------------------------------------------------------------------------

const searchPayload = `{
  "news": [
    {"title": "First", "publisher": "Wire", "link": "https://n/1", "providerPublishTime": 1700000000},
    {"title": "Second", "publisher": "Desk", "link": "https://n/2", "providerPublishTime": 1700086400},
    {"title": "Third", "publisher": "Feed", "link": "https://n/3", "providerPublishTime": 1700172800}
  ]
}`

func TestFetchNewsHonorsLimit(t *testing.T) {
	s := testSource(map[string]string{"/v1/finance/search": searchPayload})

	news, err := s.FetchNews("AAPL")
	if err != nil {
		t.Fatalf("FetchNews failed: %v", err)
	}

	if len(news) != 2 {
		t.Fatalf("got %d items, want limit 2", len(news))
	}
	if news[0].Title != "First" || news[0].Source != "Wire" {
		t.Fatalf("item mismatch: %+v", news[0])
	}
	if news[0].PublishedDate != "2023-11-14" {
		t.Fatalf("published date = %s, want 2023-11-14", news[0].PublishedDate)
	}
}

// -----------------------------------------------------------------------------

func indexPayload(symbol string, price, prevClose float64) string {
	return fmt.Sprintf(`{"chart": {"result": [{
	  "meta": {"symbol": "%s", "regularMarketPrice": %f, "chartPreviousClose": %f}
	}], "error": null}}`, symbol, price, prevClose)
}

func TestFetchIndices(t *testing.T) {
	s := testSource(map[string]string{
		"/v8/finance/chart/^GSPC": indexPayload("^GSPC", 5000, 4950),
		"/v8/finance/chart/^DJI":  indexPayload("^DJI", 40000, 40000),
		"/v8/finance/chart/^IXIC": indexPayload("^IXIC", 16000, 16100),
		"/v8/finance/chart/^RUT":  indexPayload("^RUT", 2040, 2000),
		"/v8/finance/chart/^FTSE": indexPayload("^FTSE", 8000, 7900),
	})

	quotes, err := s.FetchIndices()
	if err != nil {
		t.Fatalf("FetchIndices failed: %v", err)
	}

	wantOrder := []string{"^GSPC", "^DJI", "^IXIC", "^RUT", "^FTSE"}
	if len(quotes) != len(wantOrder) {
		t.Fatalf("got %d quotes, want %d", len(quotes), len(wantOrder))
	}
	for i, symbol := range wantOrder {
		if quotes[i].Symbol != symbol {
			t.Fatalf("quote %d = %s, want %s", i, quotes[i].Symbol, symbol)
		}
	}

	if quotes[3].Name != "Russell 2000" {
		t.Fatalf("fourth index = %s, want Russell 2000", quotes[3].Name)
	}
	if math.Abs(quotes[3].ChangePercent-2) > 1e-9 {
		t.Fatalf("^RUT change = %f, want 2%%", quotes[3].ChangePercent)
	}
}
