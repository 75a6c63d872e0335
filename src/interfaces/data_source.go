package interfaces

import (
	"stock-insight/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource interface for fetching market data from external providers.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchHistory retrieves daily OHLCV bars for the given symbols, covering
	// the configured history window. Symbols that fail are omitted from the
	// result; an error is returned only when every fetch failed.
	FetchHistory(symbols []string) (map[string][]models.MOHLCVBar, error)

	// -----------------------------------------------------------------------------

	// FetchCompanyInfo retrieves descriptive metadata for one ticker.
	FetchCompanyInfo(symbol string) (*models.MCompanyInfo, error)

	// -----------------------------------------------------------------------------

	// FetchNews retrieves the most recent news articles for one ticker.
	FetchNews(symbol string) ([]models.MNewsItem, error)

	// -----------------------------------------------------------------------------

	// FetchIndices retrieves the latest level and day change of the major
	// market indices.
	FetchIndices() ([]models.MIndexQuote, error)
}
