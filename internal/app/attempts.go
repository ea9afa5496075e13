package app

import (
	"context"

	"smart-note-service/internal/domain"
)

// Attempts returns every attempt, newest first.
func (s *Store) Attempts(ctx context.Context) ([]domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QuizAttempt, len(s.attempts))
	for i, attempt := range s.attempts {
		out[i] = attempt.Clone()
	}
	return out, nil
}

// AttemptsForQuiz returns the attempts referencing quizID.
func (s *Store) AttemptsForQuiz(ctx context.Context, quizID string) ([]domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.QuizAttempt{}
	for _, attempt := range s.attempts {
		if attempt.QuizID == quizID {
			out = append(out, attempt.Clone())
		}
	}
	return out, nil
}

// Attempt looks up an attempt by id.
func (s *Store) Attempt(ctx context.Context, id string) (domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.attemptIndexLocked(id)
	if i < 0 {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	return s.attempts[i].Clone(), nil
}

// CreateAttempt starts an empty attempt. quizID is not checked; completing an
// attempt for an unknown quiz fails instead.
func (s *Store) CreateAttempt(ctx context.Context, quizID string) (domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := domain.QuizAttempt{
		ID:        s.newID(),
		QuizID:    quizID,
		Answers:   map[string]domain.Answer{},
		Timestamp: s.now(),
	}
	s.attempts = append([]domain.QuizAttempt{attempt}, s.attempts...)
	if err := s.persistLocked(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	return attempt.Clone(), nil
}

// SubmitAnswer records answer for questionID, replacing any earlier answer.
// Neither the question id nor the answer type is checked against the quiz.
func (s *Store) SubmitAnswer(ctx context.Context, attemptID, questionID string, answer domain.Answer) (domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.attemptIndexLocked(attemptID)
	if i < 0 {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if s.attempts[i].Completed {
		return domain.QuizAttempt{}, domain.ErrAttemptCompleted
	}

	updated := s.attempts[i].Clone()
	updated.Answers[questionID] = answer
	s.attempts[i] = updated
	if err := s.persistLocked(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.feed.publish(updated.Clone())
	return updated.Clone(), nil
}

// CompleteAttempt scores the attempt against its quiz and marks it completed.
// Completing twice recomputes the same score.
func (s *Store) CompleteAttempt(ctx context.Context, attemptID string) (domain.QuizAttempt, error) {
	if err := s.wait(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.attemptIndexLocked(attemptID)
	if i < 0 {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	quiz, ok := s.quizLocked(s.attempts[i].QuizID)
	if !ok {
		return domain.QuizAttempt{}, domain.ErrQuizNotFound
	}

	updated := s.attempts[i].Clone()
	_, updated.Score = Score(quiz, updated.Answers)
	updated.Completed = true
	s.attempts[i] = updated
	if err := s.persistLocked(ctx); err != nil {
		return domain.QuizAttempt{}, err
	}
	s.log.Info("quiz attempt completed", "attempt_id", updated.ID, "quiz_id", quiz.ID, "score", updated.Score)
	s.feed.publish(updated.Clone())
	return updated.Clone(), nil
}

// Score counts the questions whose answer strictly equals the correct answer
// and returns the percentage rounded half up. A quiz without questions scores 0.
func Score(quiz domain.Quiz, answers map[string]domain.Answer) (correct, score int) {
	for _, question := range quiz.Questions {
		if answer, ok := answers[question.ID]; ok && answer.Equal(question.CorrectAnswer) {
			correct++
		}
	}
	total := len(quiz.Questions)
	if total == 0 {
		return correct, 0
	}
	return correct, (200*correct + total) / (2 * total)
}

func (s *Store) attemptIndexLocked(id string) int {
	for i, attempt := range s.attempts {
		if attempt.ID == id {
			return i
		}
	}
	return -1
}
