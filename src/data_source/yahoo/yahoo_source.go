package yahoo

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"stock-insight/src/interfaces"
	"stock-insight/src/logger"
	"stock-insight/src/models"
)

// -----------------------------------------------------------------------------

const (
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s"
	summaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s"
	searchURL  = "https://query1.finance.yahoo.com/v1/finance/search"
)

// Major indices shown on the overview page.
var indexNames = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "S&P 500"},
	{"^DJI", "Dow Jones"},
	{"^IXIC", "NASDAQ"},
	{"^RUT", "Russell 2000"},
	{"^FTSE", "FTSE 100"},
}

type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "YahooFinanceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return s.Config.DataSource.Name
}

// -----------------------------------------------------------------------------

// FetchHistory fetches daily bars for all symbols concurrently.
func (s *YahooFinanceSource) FetchHistory(symbols []string) (map[string][]models.MOHLCVBar, error) {
	rangeStr := fmt.Sprintf("%dd", s.Config.DataSource.HistoryDays)
	return s.fetchBatch(symbols, func(symbol string) ([]models.MOHLCVBar, error) {
		return s.fetchSymbolBars(symbol, rangeStr, s.Config.DataSource.Interval)
	})
}

// -----------------------------------------------------------------------------

// fetchBatch processes symbols concurrently, bounded by a semaphore.
func (s *YahooFinanceSource) fetchBatch(
	symbols []string,
	fetchFunc func(string) ([]models.MOHLCVBar, error),
) (map[string][]models.MOHLCVBar, error) {
	if len(symbols) == 0 {
		return make(map[string][]models.MOHLCVBar), nil
	}

	results := make(map[string][]models.MOHLCVBar)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errors := make([]error, 0, len(symbols))
	var errorsMu sync.Mutex

	sem := make(chan struct{}, s.Config.Network.ConcurrentRequests)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// Small delay to avoid rate limiting
			time.Sleep(10 * time.Millisecond)

			data, err := fetchFunc(sym)
			if err != nil {
				s.Logger.Info("Error fetching symbol %s: %v", sym, err)
				errorsMu.Lock()
				errors = append(errors, err)
				errorsMu.Unlock()
				return
			}

			if data != nil {
				mu.Lock()
				results[sym] = data
				mu.Unlock()
			}
		}(symbol)
	}

	wg.Wait()

	s.Logger.Info("YahooFinance: Fetched %d/%d symbols successfully", len(results), len(symbols))

	if len(results) == 0 && len(errors) > 0 {
		return nil, fmt.Errorf("all fetches failed: %v", errors[0])
	}

	return results, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchSymbolBars(symbol, rangeStr, interval string) ([]models.MOHLCVBar, error) {
	params := map[string]string{
		"interval":       interval,
		"range":          rangeStr,
		"includePrePost": "false",
	}

	respBytes, err := s.Network.Get(fmt.Sprintf(chartURL, symbol), params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	return s.parseChartResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []*float64 `json:"high"`   // Use pointers to handle null
					Low    []*float64 `json:"low"`    // Use pointers to handle null
					Open   []*float64 `json:"open"`   // Use pointers to handle null
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte) ([]models.MOHLCVBar, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no result in response for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamps in response for %s", symbol)
	}

	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}

	quote := result.Indicators.Quote[0]

	// Alignment check before indexing into the parallel arrays
	if len(result.Timestamp) != len(quote.Close) ||
		len(result.Timestamp) != len(quote.Open) ||
		len(result.Timestamp) != len(quote.High) ||
		len(result.Timestamp) != len(quote.Low) ||
		len(result.Timestamp) != len(quote.Volume) {
		s.Logger.Info("Data alignment error for %s: Mismatched array lengths", symbol)
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	var bars []models.MOHLCVBar

	for i := 0; i < len(result.Timestamp); i++ {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			s.Logger.Info("Invalid OHLCV data received for %s at index %d", symbol, i)
			continue
		}

		closeVal := *quote.Close[i]
		volume := *quote.Volume[i]
		if closeVal <= 0 || volume < 0 {
			s.Logger.Info("Skipping invalid point for %s: close=%f, volume=%f", symbol, closeVal, volume)
			continue
		}

		bars = append(bars, models.MOHLCVBar{
			Symbol:    symbol,
			Timestamp: result.Timestamp[i],
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     closeVal,
			Volume:    volume,
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no valid data points for %s", symbol)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp < bars[j].Timestamp
	})

	s.Logger.Info("Fetched %s: %d bars [%d -> %d]",
		symbol, len(bars), bars[0].Timestamp, bars[len(bars)-1].Timestamp)

	return bars, nil
}

// -----------------------------------------------------------------------------
// Company profile (quoteSummary endpoint)
// -----------------------------------------------------------------------------

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
				Website             string `json:"website"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE       rawValue `json:"trailingPE"`
				DividendYield    rawValue `json:"dividendYield"`
				Beta             rawValue `json:"beta"`
				FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps rawValue `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) FetchCompanyInfo(symbol string) (*models.MCompanyInfo, error) {
	params := map[string]string{
		"modules": "assetProfile,price,summaryDetail,defaultKeyStatistics",
	}

	respBytes, err := s.Network.Get(fmt.Sprintf(summaryURL, symbol), params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp yahooSummaryResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no summary result for %s", symbol)
	}

	r := resp.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	return &models.MCompanyInfo{
		Symbol:        symbol,
		Name:          name,
		Sector:        r.AssetProfile.Sector,
		Industry:      r.AssetProfile.Industry,
		Description:   r.AssetProfile.LongBusinessSummary,
		Website:       r.AssetProfile.Website,
		MarketCap:     r.Price.MarketCap.Raw,
		PERatio:       r.SummaryDetail.TrailingPE.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw * 100,
		Beta:          r.SummaryDetail.Beta.Raw,
		EPS:           r.DefaultKeyStatistics.TrailingEps.Raw,
		High52Week:    r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		Low52Week:     r.SummaryDetail.FiftyTwoWeekLow.Raw,
	}, nil
}

// -----------------------------------------------------------------------------
// News (search endpoint)
// -----------------------------------------------------------------------------

type yahooSearchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) FetchNews(symbol string) ([]models.MNewsItem, error) {
	limit := s.Config.DataSource.NewsLimit
	params := map[string]string{
		"q":           symbol,
		"newsCount":   fmt.Sprintf("%d", limit),
		"quotesCount": "0",
	}

	respBytes, err := s.Network.Get(searchURL, params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s news: %w", symbol, err)
	}

	var resp yahooSearchResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	items := make([]models.MNewsItem, 0, limit)
	for _, n := range resp.News {
		if len(items) >= limit {
			break
		}
		items = append(items, models.MNewsItem{
			Title:         n.Title,
			PublishedDate: time.Unix(n.ProviderPublishTime, 0).UTC().Format("2006-01-02"),
			Source:        n.Publisher,
			URL:           n.Link,
		})
	}

	return items, nil
}

// -----------------------------------------------------------------------------
// Market indices (chart endpoint, short range)
// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) FetchIndices() ([]models.MIndexQuote, error) {
	quotes := make([]models.MIndexQuote, 0, len(indexNames))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, idx := range indexNames {
		wg.Add(1)
		go func(symbol, name string) {
			defer wg.Done()

			params := map[string]string{
				"interval": "1d",
				"range":    "5d",
			}
			respBytes, err := s.Network.Get(fmt.Sprintf(chartURL, symbol), params)
			if err != nil {
				s.Logger.Info("Error fetching index %s: %v", symbol, err)
				return
			}

			var resp YahooChartResponse
			if err := json.Unmarshal(respBytes, &resp); err != nil || len(resp.Chart.Result) == 0 {
				s.Logger.Info("Bad index response for %s", symbol)
				return
			}

			meta := resp.Chart.Result[0].Meta
			quote := models.MIndexQuote{
				Symbol: symbol,
				Name:   name,
				Price:  meta.RegularMarketPrice,
			}
			if meta.ChartPreviousClose > 0 {
				quote.ChangePercent = (meta.RegularMarketPrice/meta.ChartPreviousClose - 1) * 100
			}

			mu.Lock()
			quotes = append(quotes, quote)
			mu.Unlock()
		}(idx.Symbol, idx.Name)
	}

	wg.Wait()

	if len(quotes) == 0 {
		return nil, fmt.Errorf("all index fetches failed")
	}

	// Concurrent appends scramble the order; restore the display order.
	order := make(map[string]int, len(indexNames))
	for i, idx := range indexNames {
		order[idx.Symbol] = i
	}
	sort.Slice(quotes, func(i, j int) bool {
		return order[quotes[i].Symbol] < order[quotes[j].Symbol]
	})

	return quotes, nil
}
