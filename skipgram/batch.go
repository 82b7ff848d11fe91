package skipgram

import "github.com/rs/zerolog"

// PairSource is the pull interface BatchGenerator draws from.
type PairSource interface {
	Next() (Pair, bool)
	Reset()
	Total() int64
}

// BatchOptions tunes a BatchGenerator.
type BatchOptions struct {
	// Restart rewinds the source when it runs dry instead of returning ErrExhausted.
	Restart bool
	Logger  zerolog.Logger
}

// BatchGenerator assembles fixed-size batches from a pair stream. It is not safe
// for concurrent use.
type BatchGenerator struct {
	src       PairSource
	batchSize int
	opts      BatchOptions
	batches   int
	restarts  int
	failed    error
}

// NewBatchGenerator validates batchSize and wraps src.
func NewBatchGenerator(src PairSource, batchSize int, opts BatchOptions) (*BatchGenerator, error) {
	if batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	return &BatchGenerator{src: src, batchSize: batchSize, opts: opts}, nil
}

// Next pulls BatchSize pairs into a fresh batch. Without Restart, running out of
// pairs mid-batch discards the partial batch and returns an *ExhaustionError;
// every later call returns the same error.
func (g *BatchGenerator) Next() (Batch, error) {
	if g.failed != nil {
		return Batch{}, g.failed
	}
	batch := Batch{
		Centers: make([]int32, g.batchSize),
		Targets: make([][1]float64, g.batchSize),
	}
	for k := 0; k < g.batchSize; k++ {
		pair, ok := g.src.Next()
		if !ok {
			if !g.opts.Restart {
				g.failed = &ExhaustionError{Batch: g.batches, Filled: k}
				return Batch{}, g.failed
			}
			if g.src.Total() == 0 {
				g.failed = ErrNoPairs
				return Batch{}, g.failed
			}
			g.src.Reset()
			g.restarts++
			g.opts.Logger.Debug().
				Int("batch", g.batches).
				Int("restarts", g.restarts).
				Msg("pair stream restarted")
			pair, _ = g.src.Next()
		}
		batch.Centers[k] = int32(pair.Center)
		batch.Targets[k][0] = float64(pair.Target)
	}
	g.batches++
	return batch, nil
}

// Rewind restarts the pair stream from the first subject and clears a previous
// exhaustion, letting callers loop explicitly.
func (g *BatchGenerator) Rewind() {
	g.src.Reset()
	g.failed = nil
	g.restarts++
}

// BatchSize is the number of pairs per batch.
func (g *BatchGenerator) BatchSize() int {
	return g.batchSize
}

// Batches counts fully assembled batches.
func (g *BatchGenerator) Batches() int {
	return g.batches
}

// Restarts counts how often the pair stream was rewound.
func (g *BatchGenerator) Restarts() int {
	return g.restarts
}

// Take returns up to n batches, stopping early on the first error. n <= 0 pulls
// nothing.
func (g *BatchGenerator) Take(n int) ([]Batch, error) {
	if n <= 0 {
		return nil, nil
	}
	out := make([]Batch, 0, n)
	for len(out) < n {
		b, err := g.Next()
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, nil
}
