package app

import (
	"context"
	"sync"

	"smart-note-service/internal/domain"
)

// WatchAttempt returns a channel that receives the attempt after every answer
// and on completion, starting with its current state. The caller must invoke
// the returned cancel function to avoid leaks.
func (s *Store) WatchAttempt(_ context.Context, attemptID string) (<-chan domain.QuizAttempt, func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.attemptIndexLocked(attemptID)
	if i < 0 {
		return nil, nil, domain.ErrAttemptNotFound
	}
	ch, cancel := s.feed.subscribe(attemptID, s.attempts[i].Clone())
	return ch, cancel, nil
}

// attemptFeed fans attempt updates out to watchers keyed by attempt id.
type attemptFeed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan domain.QuizAttempt]struct{}
}

func newAttemptFeed() *attemptFeed {
	return &attemptFeed{subscribers: make(map[string]map[chan domain.QuizAttempt]struct{})}
}

func (f *attemptFeed) subscribe(attemptID string, initial domain.QuizAttempt) (<-chan domain.QuizAttempt, func()) {
	ch := make(chan domain.QuizAttempt, 8)

	f.mu.Lock()
	subs, ok := f.subscribers[attemptID]
	if !ok {
		subs = make(map[chan domain.QuizAttempt]struct{})
		f.subscribers[attemptID] = subs
	}
	subs[ch] = struct{}{}
	f.mu.Unlock()

	ch <- initial

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs, ok := f.subscribers[attemptID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
		}
		if len(subs) == 0 {
			delete(f.subscribers, attemptID)
		}
	}
	return ch, cancel
}

// publish never blocks: a full watcher loses its oldest pending update.
func (f *attemptFeed) publish(attempt domain.QuizAttempt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[attempt.ID] {
		select {
		case ch <- attempt:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- attempt
		}
	}
}

func (f *attemptFeed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, subs := range f.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(f.subscribers, id)
	}
}
