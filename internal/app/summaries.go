package app

import (
	"context"

	"smart-note-service/internal/domain"
	"smart-note-service/internal/generate"
)

// SummaryInput is what the presentation layer submits to create a summary.
// An empty Length falls back to the user's default.
type SummaryInput struct {
	Title  string
	Text   string
	Length domain.SummaryLength
}

// Summaries returns every summary, newest first.
func (s *Store) Summaries(ctx context.Context) ([]domain.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Summary{}, s.summaries...), nil
}

// Summary looks up a summary by id.
func (s *Store) Summary(ctx context.Context, id string) (domain.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Summary{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaryLocked(id)
	if !ok {
		return domain.Summary{}, domain.ErrSummaryNotFound
	}
	return summary, nil
}

// CreateSummary generates and stores a summary of in.Text.
func (s *Store) CreateSummary(ctx context.Context, in SummaryInput) (domain.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Summary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	length := in.Length
	if length == "" {
		length = s.settings.DefaultSummaryLength
	}
	summary := domain.Summary{
		ID:           s.newID(),
		Title:        in.Title,
		OriginalText: in.Text,
		SummaryText:  generate.Summary(in.Text, length),
		Timestamp:    s.now(),
		Length:       length,
	}
	s.summaries = append([]domain.Summary{summary}, s.summaries...)
	if err := s.persistLocked(ctx); err != nil {
		return domain.Summary{}, err
	}
	s.log.Debug("summary created", "summary_id", summary.ID, "length", length)
	return summary, nil
}

// DeleteSummary removes the summary. Quizzes generated from it are kept.
func (s *Store) DeleteSummary(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Summary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		if summary.ID != id {
			kept = append(kept, summary)
		}
	}
	s.summaries = kept
	return s.persistLocked(ctx)
}

func (s *Store) summaryLocked(id string) (domain.Summary, bool) {
	for _, summary := range s.summaries {
		if summary.ID == id {
			return summary, true
		}
	}
	return domain.Summary{}, false
}
