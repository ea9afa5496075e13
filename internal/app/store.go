package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"smart-note-service/internal/domain"
	"smart-note-service/internal/platform/logger"
)

// Keys of the four persisted collections.
const (
	KeySummaries = "smart-note-summaries"
	KeyQuizzes   = "smart-note-quizzes"
	KeyAttempts  = "smart-note-attempts"
	KeySettings  = "smart-note-settings"
)

// BlobStore persists opaque JSON documents by key (in-memory, SQLite, Redis, Postgres).
type BlobStore interface {
	// Get returns ok=false when the key was never written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// PutAll overwrites every given key, atomically where the backend allows.
	PutAll(ctx context.Context, blobs map[string][]byte) error
	Close() error
}

// Store owns summaries, quizzes, attempts and settings. Every mutation holds
// the write lock until the full snapshot has been handed to the BlobStore, so
// operations never interleave.
type Store struct {
	blobs   BlobStore
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
	latency time.Duration
	feed    *attemptFeed

	mu        sync.RWMutex
	summaries []domain.Summary
	quizzes   []domain.Quiz
	attempts  []domain.QuizAttempt
	settings  domain.UserSettings
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards output.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the id generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLatency delays every operation by d before it starts.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// Open loads the four collections from blobs. Collections that were never
// persisted start from the seed dataset.
func Open(ctx context.Context, blobs BlobStore, opts ...Option) (*Store, error) {
	s := &Store{
		blobs: blobs,
		log:   logger.Nop(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: newID,
		feed:  newAttemptFeed(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := load(ctx, blobs, KeySummaries, &s.summaries, domain.SeedSummaries); err != nil {
		return nil, err
	}
	if err := load(ctx, blobs, KeyQuizzes, &s.quizzes, domain.SeedQuizzes); err != nil {
		return nil, err
	}
	if err := load(ctx, blobs, KeyAttempts, &s.attempts, domain.SeedAttempts); err != nil {
		return nil, err
	}
	if err := load(ctx, blobs, KeySettings, &s.settings, domain.DefaultSettings); err != nil {
		return nil, err
	}
	for i := range s.attempts {
		if s.attempts[i].Answers == nil {
			s.attempts[i].Answers = map[string]domain.Answer{}
		}
	}

	s.log.Info("content store loaded",
		"summaries", len(s.summaries),
		"quizzes", len(s.quizzes),
		"attempts", len(s.attempts),
	)
	return s, nil
}

func load[T any](ctx context.Context, blobs BlobStore, key string, dst *T, seed func() T) error {
	data, ok, err := blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		*dst = seed()
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Close flushes the current state, stops all attempt watchers and closes the
// BlobStore.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed.closeAll()
	flushErr := s.persistLocked(ctx)
	if err := s.blobs.Close(); err != nil && flushErr == nil {
		return err
	}
	return flushErr
}

// Release stops all attempt watchers and closes the BlobStore without
// writing anything. Read-only callers use it instead of Close.
func (s *Store) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed.closeAll()
	return s.blobs.Close()
}

// persistLocked overwrites all four collections. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) error {
	blobs := make(map[string][]byte, 4)
	for key, value := range map[string]any{
		KeySummaries: s.summaries,
		KeyQuizzes:   s.quizzes,
		KeyAttempts:  s.attempts,
		KeySettings:  s.settings,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		blobs[key] = data
	}
	if err := s.blobs.PutAll(ctx, blobs); err != nil {
		s.log.Error("persist failed", "error", err)
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// wait models storage latency. Cancellation is honored only here, before an
// operation has touched any state.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
