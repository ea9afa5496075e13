package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every lookup miss below.
	ErrNotFound = errors.New("not found")
	// ErrSummaryNotFound is returned when a summary id does not resolve.
	ErrSummaryNotFound = fmt.Errorf("summary %w", ErrNotFound)
	// ErrQuizNotFound indicates the quiz could not be loaded.
	ErrQuizNotFound = fmt.Errorf("quiz %w", ErrNotFound)
	// ErrAttemptNotFound is returned for unknown attempt ids.
	ErrAttemptNotFound = fmt.Errorf("quiz attempt %w", ErrNotFound)

	// ErrAttemptCompleted rejects answers sent after an attempt was completed.
	ErrAttemptCompleted = errors.New("quiz attempt already completed")
	// ErrAttemptIncomplete is returned when reviewing an attempt that was never completed.
	ErrAttemptIncomplete = errors.New("quiz attempt not completed")
	// ErrDegenerateInput marks text without a single sentence.
	ErrDegenerateInput = errors.New("no sentences in input")
	// ErrInvalidInput is used at the transport boundary for malformed requests.
	ErrInvalidInput = errors.New("invalid input")
)
