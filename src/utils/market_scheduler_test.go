package utils

import (
	"testing"
	"time"

	"stock-insight/src/logger"
)

// -----------------------------------------------------------------------------

func TestGetCalendarNeverNil(t *testing.T) {
	for _, symbol := range []string{"AAPL", "^GSPC", "AIR.PA", "7203.T", "BHP.AX", "WEIRD.XYZ"} {
		if cal := GetCalendar(symbol); cal == nil {
			t.Fatalf("GetCalendar(%s) returned nil", symbol)
		}
	}
}

// -----------------------------------------------------------------------------

func TestWeekendIsNotTradingDay(t *testing.T) {
	cal := GetCalendar("AAPL")

	saturday := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if cal.IsTradingDay(saturday) {
		t.Fatalf("Saturday reported as a trading day")
	}
	if cal.IsOpenOnMinute(saturday) {
		t.Fatalf("market reported open on a Saturday")
	}
}

// -----------------------------------------------------------------------------

func TestMarketSchedulerMapping(t *testing.T) {
	ms := NewMarketScheduler([]string{"AAPL", "MSFT", "AIR.PA"}, logger.NewLogger("ERROR", "test"))

	if len(ms.Calendars) != 3 {
		t.Fatalf("mapped %d symbols, want 3", len(ms.Calendars))
	}

	ms.UpdateSymbols([]string{"AAPL"})
	if len(ms.Calendars) != 1 {
		t.Fatalf("update kept %d symbols, want 1", len(ms.Calendars))
	}

	// Symbols we never mapped must not be starved of updates.
	if !ms.MarketOpen("UNTRACKED") {
		t.Fatalf("unknown symbol should default to open")
	}
}

// -----------------------------------------------------------------------------

func TestAnyMarketOpenEmpty(t *testing.T) {
	ms := NewMarketScheduler(nil, logger.NewLogger("ERROR", "test"))
	if ms.AnyMarketOpen() {
		t.Fatalf("no calendars should mean no open market")
	}
}
