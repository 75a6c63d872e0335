package montecarlo

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"stock-insight/src/series"
)

// -----------------------------------------------------------------------------

// ErrInsufficientReturns reports a history too short to estimate the return
// distribution (mean and sample std need at least two observations).
var ErrInsufficientReturns = errors.New("montecarlo: need at least two historical returns")

// Batch is an ordered collection of simulated price paths plus the derived
// summary statistics.
type Batch struct {
	StartPrice        float64
	Days              int
	Mu                float64
	Sigma             float64
	Paths             [][]float64 // count paths, each of length days+1
	MeanPath          []float64   // elementwise mean across paths
	TerminalValues    []float64   // final price of each path
	TerminalPctChange []float64   // final price as % change from StartPrice
}

// -----------------------------------------------------------------------------

// How many paths one worker generates per batch. Paths are independent, so
// the split is only about amortizing goroutine overhead.
const pathsPerWorker = 64

// Simulate draws `count` independent price paths over `days` steps. Each path
// compounds i.i.d. Normal(mu, sigma) daily returns from startPrice, with mu
// and sigma estimated from the historical return series. The same seed always
// produces the same batch: every path derives its own generator seed from a
// master generator before any concurrent work starts.
func Simulate(startPrice float64, returns series.TimeSeries, days, count int, seed int64) (*Batch, error) {
	if startPrice <= 0 {
		return nil, fmt.Errorf("montecarlo: start price must be positive, got %f", startPrice)
	}
	if days < 1 {
		return nil, fmt.Errorf("montecarlo: horizon must be at least 1 day, got %d", days)
	}
	if count < 1 {
		return nil, fmt.Errorf("montecarlo: simulation count must be at least 1, got %d", count)
	}

	values := returns.DefinedValues()
	sigma, ok := series.SampleStd(values)
	if !ok {
		return nil, ErrInsufficientReturns
	}
	mu := series.Mean(values)

	// Derive per-path seeds sequentially so the batch is deterministic
	// regardless of goroutine scheduling.
	master := rand.New(rand.NewSource(seed))
	pathSeeds := make([]int64, count)
	for i := range pathSeeds {
		pathSeeds[i] = master.Int63()
	}

	paths := make([][]float64, count)
	var wg sync.WaitGroup
	for start := 0; start < count; start += pathsPerWorker {
		end := start + pathsPerWorker
		if end > count {
			end = count
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				paths[i] = simulatePath(startPrice, mu, sigma, days, pathSeeds[i])
			}
		}(start, end)
	}
	wg.Wait()

	batch := &Batch{
		StartPrice:        startPrice,
		Days:              days,
		Mu:                mu,
		Sigma:             sigma,
		Paths:             paths,
		MeanPath:          make([]float64, days+1),
		TerminalValues:    make([]float64, count),
		TerminalPctChange: make([]float64, count),
	}

	for t := 0; t <= days; t++ {
		sum := 0.0
		for _, path := range paths {
			sum += path[t]
		}
		batch.MeanPath[t] = sum / float64(count)
	}
	for i, path := range paths {
		batch.TerminalValues[i] = path[days]
		batch.TerminalPctChange[i] = (path[days]/startPrice - 1) * 100
	}

	return batch, nil
}

// -----------------------------------------------------------------------------

func simulatePath(startPrice, mu, sigma float64, days int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	path := make([]float64, days+1)
	path[0] = startPrice
	for t := 1; t <= days; t++ {
		r := rng.NormFloat64()*sigma + mu
		path[t] = path[t-1] * (1 + r)
	}
	return path
}

// -----------------------------------------------------------------------------

// ExpectedPrice is the mean terminal value of the batch.
func (b *Batch) ExpectedPrice() float64 {
	return b.MeanPath[b.Days]
}

// ExpectedChangePercent is the mean terminal value as % change from the
// starting price.
func (b *Batch) ExpectedChangePercent() float64 {
	return (b.ExpectedPrice()/b.StartPrice - 1) * 100
}
