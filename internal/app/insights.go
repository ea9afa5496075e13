package app

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"smart-note-service/internal/domain"
)

const recentActivityLimit = 5

// SearchSummaries matches term case-insensitively against titles and summary
// texts. A blank term returns everything.
func (s *Store) SearchSummaries(ctx context.Context, term string) ([]domain.Summary, error) {
	summaries, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return summaries, nil
	}
	needle := strings.ToLower(term)
	out := []domain.Summary{}
	for _, summary := range summaries {
		if strings.Contains(strings.ToLower(summary.Title), needle) ||
			strings.Contains(strings.ToLower(summary.SummaryText), needle) {
			out = append(out, summary)
		}
	}
	return out, nil
}

// Dashboard returns totals and the five most recent summaries or quizzes.
func (s *Store) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Dashboard{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	dash := domain.Dashboard{
		TotalSummaries: len(s.summaries),
		TotalQuizzes:   len(s.quizzes),
	}
	activities := make([]domain.Activity, 0, len(s.summaries)+len(s.quizzes))
	for _, summary := range s.summaries {
		dash.TotalCharacters += utf8.RuneCountInString(summary.OriginalText)
		activities = append(activities, domain.Activity{
			ID: summary.ID, Kind: domain.ActivitySummary, Title: summary.Title, Timestamp: summary.Timestamp,
		})
	}
	for _, quiz := range s.quizzes {
		activities = append(activities, domain.Activity{
			ID: quiz.ID, Kind: domain.ActivityQuiz, Title: quiz.Title, Timestamp: quiz.Timestamp,
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > recentActivityLimit {
		activities = activities[:recentActivityLimit]
	}
	dash.Recent = activities
	return dash, nil
}

const noAnswer = "No answer provided"

// ReviewAttempt lays out a completed attempt question by question.
func (s *Store) ReviewAttempt(ctx context.Context, attemptID string) (domain.AttemptReview, error) {
	if err := s.wait(ctx); err != nil {
		return domain.AttemptReview{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.attemptIndexLocked(attemptID)
	if i < 0 {
		return domain.AttemptReview{}, domain.ErrAttemptNotFound
	}
	attempt := s.attempts[i]
	if !attempt.Completed {
		return domain.AttemptReview{}, domain.ErrAttemptIncomplete
	}
	quiz, ok := s.quizLocked(attempt.QuizID)
	if !ok {
		return domain.AttemptReview{}, domain.ErrQuizNotFound
	}

	correct, _ := Score(quiz, attempt.Answers)
	review := domain.AttemptReview{
		AttemptID:      attempt.ID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          attempt.Score,
		CorrectCount:   correct,
		IncorrectCount: len(quiz.Questions) - correct,
		Timestamp:      attempt.Timestamp,
		Questions:      make([]domain.QuestionReview, 0, len(quiz.Questions)),
	}
	for n, question := range quiz.Questions {
		answer, answered := attempt.Answers[question.ID]
		yours := noAnswer
		if answered && !answer.IsZero() {
			yours = renderAnswer(question, answer)
		}
		review.Questions = append(review.Questions, domain.QuestionReview{
			Position:      n + 1,
			QuestionID:    question.ID,
			Question:      question.Question,
			Type:          question.Type,
			YourAnswer:    yours,
			CorrectAnswer: renderAnswer(question, question.CorrectAnswer),
			Explanation:   question.Explanation,
			Correct:       answered && answer.Equal(question.CorrectAnswer),
		})
	}
	return review, nil
}

// renderAnswer shows the option text for an in-range index.
func renderAnswer(question domain.QuizQuestion, answer domain.Answer) string {
	if idx, ok := answer.Index(); ok && idx >= 0 && idx < len(question.Options) {
		return question.Options[idx]
	}
	return answer.String()
}
