package domain

import "time"

// SummaryLength selects how many sentences a long text keeps.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

func (l SummaryLength) Valid() bool {
	return l == LengthShort || l == LengthMedium || l == LengthLong
}

// Difficulty is recorded on a quiz; generation ignores it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// QuestionType drives how a question is rendered and scored.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	ShortAnswer    QuestionType = "short-answer"
)

// Theme is a presentation preference only.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Summary is generated from a source text and never edited afterwards.
type Summary struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	OriginalText string        `json:"originalText"`
	SummaryText  string        `json:"summaryText"`
	Timestamp    time.Time     `json:"timestamp"`
	Length       SummaryLength `json:"length"`
}

// QuizQuestion carries options iff it is not a short-answer question.
// CorrectAnswer is an index into Options, or free text for short answers.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// Quiz is an ordered list of questions. SourceID is a weak reference to the
// summary it came from; the summary may be gone.
type Quiz struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	SourceID   string         `json:"sourceId"`
	Questions  []QuizQuestion `json:"questions"`
	Timestamp  time.Time      `json:"timestamp"`
	Difficulty Difficulty     `json:"difficulty"`
}

// QuizAttempt is one run through a quiz. Score is only meaningful once Completed.
type QuizAttempt struct {
	ID        string            `json:"id"`
	QuizID    string            `json:"quizId"`
	Answers   map[string]Answer `json:"answers"`
	Score     int               `json:"score"`
	Timestamp time.Time         `json:"timestamp"`
	Completed bool              `json:"completed"`
}

// UserSettings holds the defaults the presentation layer preselects.
type UserSettings struct {
	DefaultSummaryLength     SummaryLength `json:"defaultSummaryLength"`
	DefaultQuizDifficulty    Difficulty    `json:"defaultQuizDifficulty"`
	DefaultQuizQuestionCount int           `json:"defaultQuizQuestionCount"`
	Theme                    Theme         `json:"theme"`
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	DefaultSummaryLength     *SummaryLength `json:"defaultSummaryLength,omitempty"`
	DefaultQuizDifficulty    *Difficulty    `json:"defaultQuizDifficulty,omitempty"`
	DefaultQuizQuestionCount *int           `json:"defaultQuizQuestionCount,omitempty"`
	Theme                    *Theme         `json:"theme,omitempty"`
}

// DefaultSettings is used when nothing has been persisted yet.
func DefaultSettings() UserSettings {
	return UserSettings{
		DefaultSummaryLength:     LengthMedium,
		DefaultQuizDifficulty:    DifficultyMedium,
		DefaultQuizQuestionCount: 5,
		Theme:                    ThemeLight,
	}
}

// Apply merges the patch over s.
func (p SettingsPatch) Apply(s UserSettings) UserSettings {
	if p.DefaultSummaryLength != nil {
		s.DefaultSummaryLength = *p.DefaultSummaryLength
	}
	if p.DefaultQuizDifficulty != nil {
		s.DefaultQuizDifficulty = *p.DefaultQuizDifficulty
	}
	if p.DefaultQuizQuestionCount != nil {
		s.DefaultQuizQuestionCount = *p.DefaultQuizQuestionCount
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}

// Clone copies the question slice and every option slice.
func (q Quiz) Clone() Quiz {
	if q.Questions == nil {
		return q
	}
	questions := make([]QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		if question.Options != nil {
			question.Options = append([]string(nil), question.Options...)
		}
		questions[i] = question
	}
	q.Questions = questions
	return q
}

// Clone copies the answers map.
func (a QuizAttempt) Clone() QuizAttempt {
	answers := make(map[string]Answer, len(a.Answers))
	for k, v := range a.Answers {
		answers[k] = v
	}
	a.Answers = answers
	return a
}

// ActivityKind tags a dashboard activity row.
type ActivityKind string

const (
	ActivitySummary ActivityKind = "summary"
	ActivityQuiz    ActivityKind = "quiz"
)

// Activity is a dashboard row pointing at a summary or a quiz.
type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"type"`
	Title     string       `json:"title"`
	Timestamp time.Time    `json:"timestamp"`
}

// Dashboard aggregates what the landing page shows.
type Dashboard struct {
	TotalSummaries  int        `json:"totalSummaries"`
	TotalQuizzes    int        `json:"totalQuizzes"`
	TotalCharacters int        `json:"totalCharacters"`
	Recent          []Activity `json:"recent"`
}

// QuestionReview is one row of a completed attempt's review.
type QuestionReview struct {
	Position      int          `json:"position"`
	QuestionID    string       `json:"questionId"`
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	YourAnswer    string       `json:"yourAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
	Correct       bool         `json:"correct"`
}

// AttemptReview is the result page of a completed attempt.
type AttemptReview struct {
	AttemptID      string           `json:"attemptId"`
	QuizID         string           `json:"quizId"`
	QuizTitle      string           `json:"quizTitle"`
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	IncorrectCount int              `json:"incorrectCount"`
	Timestamp      time.Time        `json:"timestamp"`
	Questions      []QuestionReview `json:"questions"`
}
