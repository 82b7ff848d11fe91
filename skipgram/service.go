package skipgram

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle phase of a Pipeline.
type State int

const (
	StateInitializing State = iota
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stats summarizes a loaded dataset.
type Stats struct {
	Records      int   `json:"records"`
	Subjects     int   `json:"subjects"`
	Vocabulary   int   `json:"vocabulary"`
	Duplicates   int   `json:"duplicates"`
	UnknownCodes int   `json:"unknownCodes"`
	Pairs        int64 `json:"pairs"`
}

// Pipeline reads the inputs, writes the vocabulary tables and holds the grouped,
// indexed dataset that batches are drawn from.
type Pipeline struct {
	cfg    Config
	logger zerolog.Logger
	state  State

	dict    *Dictionary
	inverse map[int]string
	groups  []SubjectGroup
	stats   Stats
}

// NewPipeline runs the whole initialization once: both tables are read in
// parallel, codes are indexed, vocab.tsv and vocab_descs.tsv are written and the
// indices are grouped by subject. A run that fails before writing leaves
// TargetDir untouched.
func NewPipeline(ctx context.Context, cfg Config, logger zerolog.Logger) (*Pipeline, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	p := &Pipeline{cfg: cfg, logger: logger, state: StateInitializing}

	var (
		records []Record
		entries []VocabularyEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		records, err = ReadRecords(cfg.DataPath, cfg.Reader)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		entries, err = ReadVocabulary(cfg.VocabPath, cfg.Reader)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info().
		Int("records", len(records)).
		Int("entries", len(entries)).
		Str("data", cfg.DataPath).
		Str("vocab", cfg.VocabPath).
		Msg("inputs loaded")

	dict := NewVocabularyDictionary(entries)
	if dups := dict.Duplicates(); len(dups) > 0 {
		logger.Warn().Int("count", len(dups)).Strs("codes", firstN(dups, 10)).Msg("duplicate vocabulary codes overwrite earlier indices")
	}
	if cfg.VocabSize > 0 && cfg.VocabSize != dict.Len() {
		logger.Warn().Int("configured", cfg.VocabSize).Int("built", dict.Len()).Msg("vocab size does not match vocabulary; value is not applied")
	}

	unknown := CountUnknown(records, dict)
	if unknown > 0 {
		logger.Debug().Int("count", unknown).Str("policy", string(cfg.UnknownPolicy)).Msg("codes missing from vocabulary")
	}
	indexed, err := IndexRecords(records, dict, cfg.UnknownPolicy)
	if err != nil {
		return nil, fmt.Errorf("index records: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Outputs are only replaced once every record has an index.
	if err := WriteVocabulary(dict, cfg.TargetDir); err != nil {
		return nil, fmt.Errorf("write vocabulary: %w", err)
	}
	if err := WriteDescriptions(Descriptions(entries), cfg.TargetDir); err != nil {
		return nil, fmt.Errorf("write descriptions: %w", err)
	}
	groups := GroupBySubject(indexed)

	p.dict = dict
	p.inverse = dict.Inverse()
	p.groups = groups
	p.stats = Stats{
		Records:      len(records),
		Subjects:     len(groups),
		Vocabulary:   dict.Len(),
		Duplicates:   len(dict.Duplicates()),
		UnknownCodes: unknown,
		Pairs:        CountPairs(groups),
	}
	p.state = StateStreaming
	logger.Info().
		Int("subjects", p.stats.Subjects).
		Int("vocabulary", p.stats.Vocabulary).
		Int64("pairs", p.stats.Pairs).
		Str("target_dir", cfg.TargetDir).
		Msg("pipeline ready")
	return p, nil
}

// State returns the lifecycle phase.
func (p *Pipeline) State() State {
	return p.state
}

// Config returns a copy of the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg.Clone()
}

// Dictionary returns the code to index mapping.
func (p *Pipeline) Dictionary() *Dictionary {
	return p.dict
}

// Inverse returns the index to code mapping.
func (p *Pipeline) Inverse() map[int]string {
	return p.inverse
}

// Groups returns the indexed subject groups in enumeration order.
func (p *Pipeline) Groups() []SubjectGroup {
	return p.groups
}

// Stats returns dataset counts gathered during initialization.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Pairs starts a fresh pass over all training pairs.
func (p *Pipeline) Pairs() *PairIterator {
	return NewPairIterator(p.groups)
}

// Batches starts a batch stream of batchSize pairs over a fresh pair pass.
// batchSize 0 uses the configured size.
func (p *Pipeline) Batches(batchSize int) (*BatchGenerator, error) {
	if batchSize == 0 {
		batchSize = p.cfg.BatchSize
	}
	return NewBatchGenerator(p.Pairs(), batchSize, BatchOptions{
		Restart: p.cfg.Restart,
		Logger:  p.logger,
	})
}

// BatchGen builds a pipeline for cfg with the given vocabulary size, batch size and
// target directory and returns its batch stream. vocabSize is not applied; see
// Config.VocabSize.
func BatchGen(ctx context.Context, vocabSize, batchSize int, targetDir string, cfg Config, logger zerolog.Logger) (*BatchGenerator, error) {
	cfg.VocabSize = vocabSize
	cfg.BatchSize = batchSize
	cfg.TargetDir = targetDir
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}
	p, err := NewPipeline(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return p.Batches(batchSize)
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
