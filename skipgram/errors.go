package skipgram

import (
	"errors"
	"fmt"
)

var (
	// ErrExhausted reports that the pair stream ran dry before a batch was filled.
	ErrExhausted = errors.New("pair stream exhausted")
	// ErrNoPairs reports a restartable stream that holds no pairs at all.
	ErrNoPairs = errors.New("no training pairs in dataset")
	// ErrInvalidBatchSize rejects non-positive batch sizes.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)

// ParseError wraps any failure to open or decode an input table.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(path, format string, args ...any) error {
	return &ParseError{Path: path, Err: fmt.Errorf(format, args...)}
}

// ExhaustionError is returned by BatchGenerator.Next when the pairs run out
// mid-batch. The partially filled batch is discarded.
type ExhaustionError struct {
	Batch  int // zero-based number of the batch being assembled
	Filled int // pairs already pulled into that batch
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("batch %d: %v after %d pairs", e.Batch, ErrExhausted, e.Filled)
}

func (e *ExhaustionError) Is(target error) bool {
	return target == ErrExhausted
}

// UnknownCodeError is raised under PolicyReject for a code missing from the vocabulary.
type UnknownCodeError struct {
	Code     string
	Position int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown code %q at position %d", e.Code, e.Position)
}
