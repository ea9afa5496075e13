// Package generate holds the rule-based placeholder generators for summaries
// and quiz questions. Both are pure functions of their inputs.
package generate

import (
	"fmt"
	"regexp"
	"strings"

	"smart-note-service/internal/domain"
)

// A sentence is a run of non-terminators followed by one or more of . ! ?
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// shortTextLimit is the length (in runes) up to which a text is halved instead
// of sliced into sentences.
const shortTextLimit = 500

// Sentences splits text with the sentence heuristic. Leading whitespace stays
// attached to each sentence; trailing text without a terminator is dropped.
func Sentences(text string) []string {
	return sentencePattern.FindAllString(text, -1)
}

// SentenceCount returns how many sentences the heuristic finds for a length.
func SentenceCount(length domain.SummaryLength) int {
	switch length {
	case domain.LengthShort:
		return 2
	case domain.LengthMedium:
		return 4
	default:
		return 6
	}
}

// Summary produces the summary text for a source text.
func Summary(text string, length domain.SummaryLength) string {
	runes := []rune(text)
	if len(runes) <= shortTextLimit {
		return string(runes[:len(runes)/2])
	}
	sentences := Sentences(text)
	if n := SentenceCount(length); len(sentences) > n {
		sentences = sentences[:n]
	}
	return strings.Join(sentences, " ")
}

var questionPattern = [...]domain.QuestionType{
	domain.MultipleChoice,
	domain.MultipleChoice,
	domain.TrueFalse,
	domain.MultipleChoice,
	domain.ShortAnswer,
}

// QuestionTypeAt returns the type of the i-th (0-based) generated question.
func QuestionTypeAt(i int) domain.QuestionType {
	return questionPattern[i%len(questionPattern)]
}

const excerptLength = 50

var (
	multipleChoiceOptions = []string{
		"Option A - The correct answer",
		"Option B - An incorrect answer",
		"Option C - Another incorrect answer",
		"Option D - Yet another incorrect answer",
	}
	trueFalseOptions = []string{"True", "False"}
)

const (
	multipleChoiceExplanation = "This is the explanation for the correct answer."
	trueFalseExplanation      = "This statement is accurate based on the text."
	shortAnswerSolution       = "The correct answer would be a brief explanation of the key concepts."
	shortAnswerExplanation    = "A good answer would cover the main points and demonstrate understanding."
)

// Questions builds count placeholder questions from the summary text. The
// correct answer is always the first option, or a fixed text for short
// answers. A summary without sentences yields questions with an empty excerpt
// and ErrDegenerateInput so callers can report it; the questions are usable.
func Questions(summary domain.Summary, count int) ([]domain.QuizQuestion, error) {
	if count <= 0 {
		return []domain.QuizQuestion{}, nil
	}
	sentences := Sentences(summary.SummaryText)

	questions := make([]domain.QuizQuestion, 0, count)
	for i := 0; i < count; i++ {
		excerpt := ""
		if len(sentences) > 0 {
			excerpt = truncate(sentences[i%len(sentences)], excerptLength)
		}
		questions = append(questions, question(summary.ID, i, excerpt))
	}
	if len(sentences) == 0 {
		return questions, domain.ErrDegenerateInput
	}
	return questions, nil
}

func question(sourceID string, i int, excerpt string) domain.QuizQuestion {
	id := fmt.Sprintf("%s-q%d", sourceID, i+1)
	switch QuestionTypeAt(i) {
	case domain.MultipleChoice:
		return domain.QuizQuestion{
			ID:            id,
			Question:      `What is the main point of: "` + excerpt + `..."?`,
			Type:          domain.MultipleChoice,
			Options:       append([]string(nil), multipleChoiceOptions...),
			CorrectAnswer: domain.IndexAnswer(0),
			Explanation:   multipleChoiceExplanation,
		}
	case domain.TrueFalse:
		return domain.QuizQuestion{
			ID:            id,
			Question:      "True or False: " + excerpt + "...",
			Type:          domain.TrueFalse,
			Options:       append([]string(nil), trueFalseOptions...),
			CorrectAnswer: domain.IndexAnswer(0),
			Explanation:   trueFalseExplanation,
		}
	default:
		return domain.QuizQuestion{
			ID:            id,
			Question:      "Explain briefly: " + excerpt + "...",
			Type:          domain.ShortAnswer,
			CorrectAnswer: domain.TextAnswer(shortAnswerSolution),
			Explanation:   shortAnswerExplanation,
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
