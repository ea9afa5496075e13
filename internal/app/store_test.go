package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"smart-note-service/internal/app"
	"smart-note-service/internal/domain"
	"smart-note-service/internal/infra/memory"
)

func TestQuizLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	text := eightSentenceText()
	summary, err := store.CreateSummary(ctx, app.SummaryInput{Title: "Notes", Text: text, Length: domain.LengthMedium})
	if err != nil {
		t.Fatalf("create summary: %v", err)
	}
	parts := strings.SplitAfter(text, ". ")
	want := strings.Join([]string{
		strings.TrimSuffix(parts[0], " "),
		" " + strings.TrimSuffix(parts[1], " "),
		" " + strings.TrimSuffix(parts[2], " "),
		" " + strings.TrimSuffix(parts[3], " "),
	}, " ")
	if summary.SummaryText != want {
		t.Fatalf("unexpected summary:\n got %q\nwant %q", summary.SummaryText, want)
	}

	quiz, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: summary.ID, Title: "Quiz", Difficulty: domain.DifficultyHard, QuestionCount: 5})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	wantTypes := []domain.QuestionType{domain.MultipleChoice, domain.MultipleChoice, domain.TrueFalse, domain.MultipleChoice, domain.ShortAnswer}
	if len(quiz.Questions) != len(wantTypes) {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if q.Type != wantTypes[i] {
			t.Fatalf("question %d: expected %s, got %s", i, wantTypes[i], q.Type)
		}
	}
	if quiz.SourceID != summary.ID || quiz.Difficulty != domain.DifficultyHard {
		t.Fatalf("unexpected quiz metadata %+v", quiz)
	}

	attempt, err := store.CreateAttempt(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if attempt.Completed || attempt.Score != 0 || len(attempt.Answers) != 0 {
		t.Fatalf("expected fresh attempt, got %+v", attempt)
	}
	if _, err := store.SubmitAnswer(ctx, attempt.ID, quiz.Questions[0].ID, domain.IndexAnswer(0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	done, err := store.CompleteAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.Score != 20 {
		t.Fatalf("expected completed attempt scoring 20, got %+v", done)
	}

	again, err := store.CompleteAttempt(ctx, attempt.ID)
	if err != nil || again.Score != 20 {
		t.Fatalf("expected recompute to give 20, got %+v err=%v", again, err)
	}
}

func TestCompleteAttemptForDeletedQuiz(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	attempt, err := store.CreateAttempt(ctx, "2")
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if err := store.DeleteQuiz(ctx, "2"); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	_, err = store.CompleteAttempt(ctx, attempt.ID)
	if !errors.Is(err, domain.ErrQuizNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}

	attempts, err := store.AttemptsForQuiz(ctx, "2")
	if err != nil || len(attempts) != 1 {
		t.Fatalf("attempts must survive quiz deletion, got %d err=%v", len(attempts), err)
	}
}

func TestCreateAttemptDoesNotCheckQuiz(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	attempt, err := store.CreateAttempt(ctx, "nope")
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if _, err := store.CompleteAttempt(ctx, attempt.ID); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestUnknownAttempt(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if _, err := store.SubmitAnswer(ctx, "missing", "q", domain.IndexAnswer(0)); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected attempt not found, got %v", err)
	}
	if _, err := store.CompleteAttempt(ctx, "missing"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected attempt not found, got %v", err)
	}
	if _, err := store.Attempt(ctx, "missing"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected attempt not found, got %v", err)
	}
}

func TestSubmitAnswerLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	attempt, _ := store.CreateAttempt(ctx, "1")
	if _, err := store.SubmitAnswer(ctx, attempt.ID, "q1-1", domain.IndexAnswer(3)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got, err := store.SubmitAnswer(ctx, attempt.ID, "q1-1", domain.IndexAnswer(1))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(got.Answers) != 1 || !got.Answers["q1-1"].Equal(domain.IndexAnswer(1)) {
		t.Fatalf("expected only latest answer, got %+v", got.Answers)
	}

	done, err := store.CompleteAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Score != 20 {
		t.Fatalf("expected 1 of 5 correct, got score %d", done.Score)
	}
}

func TestSubmitAfterCompletionIsRejected(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if _, err := store.SubmitAnswer(ctx, "a1", "q1-1", domain.IndexAnswer(0)); err != domain.ErrAttemptCompleted {
		t.Fatalf("expected completed error, got %v", err)
	}
	seeded, _ := store.Attempt(ctx, "a1")
	if !seeded.Answers["q1-1"].Equal(domain.IndexAnswer(1)) {
		t.Fatalf("completed attempt was mutated: %+v", seeded.Answers)
	}
}

func TestScoreStrictEquality(t *testing.T) {
	quiz := domain.Quiz{Questions: []domain.QuizQuestion{
		{ID: "a", CorrectAnswer: domain.IndexAnswer(0)},
		{ID: "b", CorrectAnswer: domain.IndexAnswer(1)},
		{ID: "c", CorrectAnswer: domain.TextAnswer("x")},
	}}
	cases := []struct {
		answers map[string]domain.Answer
		correct int
		score   int
	}{
		{map[string]domain.Answer{}, 0, 0},
		{map[string]domain.Answer{"a": domain.TextAnswer("0")}, 0, 0},
		{map[string]domain.Answer{"a": domain.IndexAnswer(0)}, 1, 33},
		{map[string]domain.Answer{"a": domain.IndexAnswer(0), "b": domain.IndexAnswer(1)}, 2, 67},
		{map[string]domain.Answer{"a": domain.IndexAnswer(0), "b": domain.IndexAnswer(1), "c": domain.TextAnswer("x")}, 3, 100},
		{map[string]domain.Answer{"c": domain.TextAnswer("X")}, 0, 0},
	}
	for i, tc := range cases {
		correct, score := app.Score(quiz, tc.answers)
		if correct != tc.correct || score != tc.score {
			t.Fatalf("case %d: expected %d/%d, got %d/%d", i, tc.correct, tc.score, correct, score)
		}
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	questions := make([]domain.QuizQuestion, 8)
	for i := range questions {
		questions[i] = domain.QuizQuestion{ID: fmt.Sprint(i), CorrectAnswer: domain.IndexAnswer(0)}
	}
	_, score := app.Score(domain.Quiz{Questions: questions}, map[string]domain.Answer{"0": domain.IndexAnswer(0)})
	if score != 13 {
		t.Fatalf("expected 12.5 to round to 13, got %d", score)
	}
	_, score = app.Score(domain.Quiz{}, nil)
	if score != 0 {
		t.Fatalf("expected 0 for empty quiz, got %d", score)
	}
}

func TestCompleteAttemptOnEmptyQuiz(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	summary, err := store.CreateSummary(ctx, app.SummaryInput{Title: "t", Text: "One. Two."})
	if err != nil {
		t.Fatalf("create summary: %v", err)
	}
	if _, err := store.UpdateSettings(ctx, domain.SettingsPatch{DefaultQuizQuestionCount: intPtr(0)}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	quiz, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: summary.ID, Title: "empty"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if len(quiz.Questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(quiz.Questions))
	}
	attempt, _ := store.CreateAttempt(ctx, quiz.ID)
	done, err := store.CompleteAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Score != 0 || !done.Completed {
		t.Fatalf("expected score 0, got %+v", done)
	}
}

func TestCreateQuizFromMissingSummary(t *testing.T) {
	ctx := context.Background()
	store, blobs := newTestStore(t)
	writes := blobs.Writes()

	if _, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: "gone", Title: "x"}); !errors.Is(err, domain.ErrSummaryNotFound) {
		t.Fatalf("expected summary not found, got %v", err)
	}
	if blobs.Writes() != writes {
		t.Fatalf("failed operation must not persist")
	}
}

func TestCreateQuizFromSentencelessSummary(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	summary, err := store.CreateSummary(ctx, app.SummaryInput{Title: "t", Text: strings.Repeat("word ", 120)})
	if err != nil {
		t.Fatalf("create summary: %v", err)
	}
	if summary.SummaryText != "" {
		t.Fatalf("expected empty summary for sentence-less long text, got %q", summary.SummaryText)
	}
	quiz, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: summary.ID, Title: "t", QuestionCount: 2})
	if err != nil {
		t.Fatalf("degenerate input must not fail, got %v", err)
	}
	if len(quiz.Questions) != 2 || quiz.Questions[0].Question != `What is the main point of: "..."?` {
		t.Fatalf("unexpected placeholder questions %+v", quiz.Questions)
	}
}

func TestDefaultsComeFromSettings(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	summary, err := store.CreateSummary(ctx, app.SummaryInput{Title: "t", Text: "Only one sentence."})
	if err != nil {
		t.Fatalf("create summary: %v", err)
	}
	if summary.Length != domain.LengthMedium {
		t.Fatalf("expected default length, got %q", summary.Length)
	}
	quiz, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: summary.ID, Title: "t"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.Difficulty != domain.DifficultyMedium || len(quiz.Questions) != 5 {
		t.Fatalf("expected settings defaults, got difficulty=%s questions=%d", quiz.Difficulty, len(quiz.Questions))
	}
}

func TestNewestFirstAndNoCascade(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	summary, _ := store.CreateSummary(ctx, app.SummaryInput{Title: "newest", Text: "A. B."})
	summaries, _ := store.Summaries(ctx)
	if summaries[0].ID != summary.ID || len(summaries) != 3 {
		t.Fatalf("expected new summary first among 3, got %+v", summaries)
	}

	if err := store.DeleteSummary(ctx, "1"); err != nil {
		t.Fatalf("delete summary: %v", err)
	}
	if _, err := store.Summary(ctx, "1"); err != domain.ErrSummaryNotFound {
		t.Fatalf("expected summary gone, got %v", err)
	}
	quiz, err := store.Quiz(ctx, "1")
	if err != nil {
		t.Fatalf("quiz must survive summary deletion: %v", err)
	}
	if quiz.SourceID != "1" {
		t.Fatalf("expected dangling source id kept, got %q", quiz.SourceID)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	quizzes, _ := store.Quizzes(ctx)
	quizzes[0].Questions[0].Options[0] = "mutated"
	quizzes[0].Title = "mutated"
	attempts, _ := store.Attempts(ctx)
	attempts[0].Answers["q1-1"] = domain.TextAnswer("mutated")
	summaries, _ := store.Summaries(ctx)
	summaries[0].Title = "mutated"

	quiz, _ := store.Quiz(ctx, "1")
	if quiz.Title == "mutated" || quiz.Questions[0].Options[0] == "mutated" {
		t.Fatalf("quiz internals leaked: %+v", quiz)
	}
	attempt, _ := store.Attempt(ctx, "a1")
	if !attempt.Answers["q1-1"].Equal(domain.IndexAnswer(1)) {
		t.Fatalf("attempt internals leaked: %+v", attempt.Answers)
	}
	summary, _ := store.Summary(ctx, "1")
	if summary.Title == "mutated" {
		t.Fatalf("summary internals leaked")
	}
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	store, blobs := newTestStore(t)

	steps := []func() error{
		func() error { _, err := store.CreateSummary(ctx, app.SummaryInput{Title: "t", Text: "A."}); return err },
		func() error { _, err := store.CreateQuiz(ctx, app.QuizInput{SummaryID: "1", Title: "q"}); return err },
		func() error { _, err := store.CreateAttempt(ctx, "1"); return err },
		func() error { _, err := store.UpdateSettings(ctx, domain.SettingsPatch{}); return err },
		func() error { return store.DeleteQuiz(ctx, "2") },
		func() error { return store.DeleteSummary(ctx, "2") },
	}
	for i, step := range steps {
		before := blobs.Writes()
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if blobs.Writes() != before+1 {
			t.Fatalf("step %d did not persist", i)
		}
	}
	for _, key := range []string{app.KeySummaries, app.KeyQuizzes, app.KeyAttempts, app.KeySettings} {
		if _, ok, _ := blobs.Get(ctx, key); !ok {
			t.Fatalf("expected %s persisted", key)
		}
	}
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()
	clock := fixedClock()
	store, err := app.Open(ctx, blobs, app.WithClock(clock), app.WithIDs(sequentialIDs()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	summary, _ := store.CreateSummary(ctx, app.SummaryInput{Title: "t", Text: eightSentenceText(), Length: domain.LengthShort})
	quiz, _ := store.CreateQuiz(ctx, app.QuizInput{SummaryID: summary.ID, Title: "q", QuestionCount: 7})
	attempt, _ := store.CreateAttempt(ctx, quiz.ID)
	store.SubmitAnswer(ctx, attempt.ID, quiz.Questions[4].ID, domain.TextAnswer("free text"))
	store.SubmitAnswer(ctx, attempt.ID, quiz.Questions[0].ID, domain.IndexAnswer(2))
	store.UpdateSettings(ctx, domain.SettingsPatch{Theme: themePtr(domain.ThemeDark)})

	reloaded, err := app.Open(ctx, blobs)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	pairs := []struct {
		name   string
		before func() (any, error)
		after  func() (any, error)
	}{
		{"summaries", func() (any, error) { return store.Summaries(ctx) }, func() (any, error) { return reloaded.Summaries(ctx) }},
		{"quizzes", func() (any, error) { return store.Quizzes(ctx) }, func() (any, error) { return reloaded.Quizzes(ctx) }},
		{"attempts", func() (any, error) { return store.Attempts(ctx) }, func() (any, error) { return reloaded.Attempts(ctx) }},
		{"settings", func() (any, error) { return store.Settings(ctx) }, func() (any, error) { return reloaded.Settings(ctx) }},
	}
	for _, p := range pairs {
		before, err := p.before()
		if err != nil {
			t.Fatalf("%s before: %v", p.name, err)
		}
		after, err := p.after()
		if err != nil {
			t.Fatalf("%s after: %v", p.name, err)
		}
		if !reflect.DeepEqual(before, after) {
			t.Fatalf("%s differ after reload:\n%+v\n%+v", p.name, before, after)
		}
	}
}

func TestOpenSeedsMissingCollectionsOnly(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()
	if err := blobs.PutAll(ctx, map[string][]byte{app.KeySummaries: []byte(`[]`)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	store, err := app.Open(ctx, blobs)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	summaries, _ := store.Summaries(ctx)
	quizzes, _ := store.Quizzes(ctx)
	settings, _ := store.Settings(ctx)
	if len(summaries) != 0 || len(quizzes) != 2 || settings != domain.DefaultSettings() {
		t.Fatalf("unexpected initial state: %d summaries, %d quizzes, %+v", len(summaries), len(quizzes), settings)
	}
}

func TestOpenRejectsCorruptBlob(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()
	blobs.PutAll(ctx, map[string][]byte{app.KeyAttempts: []byte(`{not json`)})
	if _, err := app.Open(ctx, blobs); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestPersistFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	store, err := app.Open(ctx, &failingBlobs{BlobStore: memory.NewBlobStore(), err: boom})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.CreateAttempt(ctx, "1"); !errors.Is(err, boom) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestSettingsPartialUpdate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	length := domain.LengthLong
	got, err := store.UpdateSettings(ctx, domain.SettingsPatch{DefaultSummaryLength: &length})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := domain.DefaultSettings()
	want.DefaultSummaryLength = domain.LengthLong
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	current, _ := store.Settings(ctx)
	if current != want {
		t.Fatalf("settings not stored: %+v", current)
	}
}

func TestLatencyHonorsCancellation(t *testing.T) {
	blobs := memory.NewBlobStore()
	store, err := app.Open(context.Background(), blobs, app.WithLatency(time.Hour))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := store.CreateAttempt(ctx, "1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if blobs.Writes() != 0 {
		t.Fatalf("cancelled operation must not persist")
	}
}

func TestWatchAttemptReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	attempt, _ := store.CreateAttempt(ctx, "2")
	ch, cancel, err := store.WatchAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer cancel()

	initial := <-ch
	if initial.ID != attempt.ID || len(initial.Answers) != 0 {
		t.Fatalf("unexpected initial snapshot %+v", initial)
	}

	if _, err := store.SubmitAnswer(ctx, attempt.ID, "q2-1", domain.IndexAnswer(2)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	update := <-ch
	if !update.Answers["q2-1"].Equal(domain.IndexAnswer(2)) {
		t.Fatalf("expected answer in update, got %+v", update)
	}

	if _, err := store.CompleteAttempt(ctx, attempt.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	final := <-ch
	if !final.Completed || final.Score != 33 {
		t.Fatalf("expected completed update scoring 33, got %+v", final)
	}

	if _, _, err := store.WatchAttempt(ctx, "missing"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWatchAttemptDropsStaleUpdates(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	attempt, _ := store.CreateAttempt(ctx, "1")
	ch, cancel, _ := store.WatchAttempt(ctx, attempt.ID)
	defer cancel()

	for i := 0; i < 20; i++ {
		if _, err := store.SubmitAnswer(ctx, attempt.ID, "q1-1", domain.IndexAnswer(i)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	var last domain.QuizAttempt
	for len(ch) > 0 {
		last = <-ch
	}
	if !last.Answers["q1-1"].Equal(domain.IndexAnswer(19)) {
		t.Fatalf("expected newest update retained, got %+v", last.Answers)
	}
}

func TestCloseStopsWatchers(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	ch, cancel, err := store.WatchAttempt(ctx, "a1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	<-ch
	if err := store.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed")
	}
	cancel()
}

func TestReleaseDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	blobs := memory.NewBlobStore()
	store, err := app.Open(ctx, blobs)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ch, cancel, err := store.WatchAttempt(ctx, "a1")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer cancel()
	<-ch

	if err := store.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if blobs.Writes() != 0 {
		t.Fatalf("release must not write, got %d writes", blobs.Writes())
	}
	if _, ok, _ := blobs.Get(ctx, app.KeySummaries); ok {
		t.Fatalf("seed data must not be persisted on release")
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed")
	}
}

func TestReleaseReturnsCloseError(t *testing.T) {
	boom := errors.New("close failed")
	store, err := app.Open(context.Background(), &closeFailingBlobs{BlobStore: memory.NewBlobStore(), err: boom})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Release(); !errors.Is(err, boom) {
		t.Fatalf("expected close error, got %v", err)
	}
}

type closeFailingBlobs struct {
	*memory.BlobStore
	err error
}

func (c *closeFailingBlobs) Close() error { return c.err }

func TestSearchSummaries(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	got, _ := store.SearchSummaries(ctx, "CLIMATE")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected climate summary, got %+v", got)
	}
	got, _ = store.SearchSummaries(ctx, "explicit programming")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected summary text match, got %+v", got)
	}
	got, _ = store.SearchSummaries(ctx, "  ")
	if len(got) != 2 {
		t.Fatalf("blank term returns all, got %d", len(got))
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.CreateSummary(ctx, app.SummaryInput{Title: fmt.Sprintf("s%d", i), Text: "abcd"}); err != nil {
			t.Fatalf("create summary: %v", err)
		}
	}
	dash, err := store.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	seeded := domain.SeedSummaries()
	chars := 12 + utf8.RuneCountInString(seeded[0].OriginalText) + utf8.RuneCountInString(seeded[1].OriginalText)
	if dash.TotalSummaries != 5 || dash.TotalQuizzes != 2 || dash.TotalCharacters != chars {
		t.Fatalf("unexpected totals %+v", dash)
	}
	if len(dash.Recent) != 5 {
		t.Fatalf("expected 5 recent activities, got %d", len(dash.Recent))
	}
	if dash.Recent[0].Title != "s2" || dash.Recent[3].ID != "2" || dash.Recent[3].Kind != domain.ActivityQuiz {
		t.Fatalf("unexpected ordering %+v", dash.Recent)
	}
}

func TestReviewAttempt(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	review, err := store.ReviewAttempt(ctx, "a1")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.Score != 80 || review.CorrectCount != 4 || review.IncorrectCount != 1 || len(review.Questions) != 5 {
		t.Fatalf("unexpected review %+v", review)
	}
	first := review.Questions[0]
	if first.YourAnswer != "To allow computers to learn automatically without human intervention" || !first.Correct {
		t.Fatalf("expected option text for indexed answer, got %+v", first)
	}
	last := review.Questions[4]
	if last.Correct || last.YourAnswer != "By learning from data and improving predictions over time" {
		t.Fatalf("unexpected short answer review %+v", last)
	}

	attempt, _ := store.CreateAttempt(ctx, "2")
	if _, err := store.ReviewAttempt(ctx, attempt.ID); err != domain.ErrAttemptIncomplete {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	store.CompleteAttempt(ctx, attempt.ID)
	review, err = store.ReviewAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if review.Questions[0].YourAnswer != "No answer provided" || review.IncorrectCount != 3 {
		t.Fatalf("unexpected review of blank attempt %+v", review)
	}
}

func TestAttemptJSONShape(t *testing.T) {
	ctx := context.Background()
	store, blobs := newTestStore(t)

	attempt, _ := store.CreateAttempt(ctx, "1")
	store.SubmitAnswer(ctx, attempt.ID, "q1-5", domain.TextAnswer("text"))
	data, _, _ := blobs.Get(ctx, app.KeyAttempts)

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	answers := raw[0]["answers"].(map[string]any)
	if answers["q1-5"] != "text" {
		t.Fatalf("expected string answer on the wire, got %#v", answers["q1-5"])
	}
	if _, err := time.Parse(time.RFC3339, raw[0]["timestamp"].(string)); err != nil {
		t.Fatalf("expected RFC 3339 timestamp: %v", err)
	}
}

func newTestStore(t *testing.T) (*app.Store, *memory.BlobStore) {
	t.Helper()
	blobs := memory.NewBlobStore()
	store, err := app.Open(context.Background(), blobs, app.WithClock(fixedClock()), app.WithIDs(sequentialIDs()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, blobs
}

// fixedClock advances one second per call so ordering by timestamp is stable.
func fixedClock() func() time.Time {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func eightSentenceText() string {
	parts := make([]string, 8)
	for i := range parts {
		pad := 62
		if i == 0 {
			pad = 63
		}
		parts[i] = fmt.Sprintf("Sentence %d %s.", i+1, strings.Repeat("a", pad))
	}
	return strings.Join(parts, " ")
}

type failingBlobs struct {
	*memory.BlobStore
	err error
}

func (f *failingBlobs) PutAll(context.Context, map[string][]byte) error { return f.err }

func intPtr(v int) *int { return &v }

func themePtr(v domain.Theme) *domain.Theme { return &v }
