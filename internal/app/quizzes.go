package app

import (
	"context"
	"errors"

	"smart-note-service/internal/domain"
	"smart-note-service/internal/generate"
)

// QuizInput requests a quiz generated from a stored summary. Empty
// Difficulty and non-positive QuestionCount fall back to the user's defaults.
type QuizInput struct {
	SummaryID     string
	Title         string
	Difficulty    domain.Difficulty
	QuestionCount int
}

// Quizzes returns every quiz, newest first.
func (s *Store) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Quiz, len(s.quizzes))
	for i, quiz := range s.quizzes {
		out[i] = quiz.Clone()
	}
	return out, nil
}

// Quiz looks up a quiz by id.
func (s *Store) Quiz(ctx context.Context, id string) (domain.Quiz, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Quiz{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizLocked(id)
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz.Clone(), nil
}

// CreateQuiz generates placeholder questions from the referenced summary.
func (s *Store) CreateQuiz(ctx context.Context, in QuizInput) (domain.Quiz, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Quiz{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, ok := s.summaryLocked(in.SummaryID)
	if !ok {
		return domain.Quiz{}, domain.ErrSummaryNotFound
	}

	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = s.settings.DefaultQuizDifficulty
	}
	count := in.QuestionCount
	if count <= 0 {
		count = s.settings.DefaultQuizQuestionCount
	}

	questions, err := generate.Questions(summary, count)
	if errors.Is(err, domain.ErrDegenerateInput) {
		s.log.Warn("summary has no sentences, questions use empty excerpts", "summary_id", summary.ID)
	} else if err != nil {
		return domain.Quiz{}, err
	}

	quiz := domain.Quiz{
		ID:         s.newID(),
		Title:      in.Title,
		SourceID:   summary.ID,
		Questions:  questions,
		Timestamp:  s.now(),
		Difficulty: difficulty,
	}
	s.quizzes = append([]domain.Quiz{quiz}, s.quizzes...)
	if err := s.persistLocked(ctx); err != nil {
		return domain.Quiz{}, err
	}
	s.log.Debug("quiz created", "quiz_id", quiz.ID, "summary_id", summary.ID, "questions", len(questions))
	return quiz.Clone(), nil
}

// DeleteQuiz removes the quiz. Its attempts are kept and can no longer be completed.
func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		if quiz.ID != id {
			kept = append(kept, quiz)
		}
	}
	s.quizzes = kept
	return s.persistLocked(ctx)
}

func (s *Store) quizLocked(id string) (domain.Quiz, bool) {
	for _, quiz := range s.quizzes {
		if quiz.ID == id {
			return quiz, true
		}
	}
	return domain.Quiz{}, false
}
