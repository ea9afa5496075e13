// Package export turns finished text into downloadable documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"smart-note-service/internal/domain"
)

const (
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Document is a named artifact ready to be written or served.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Text wraps content as export-<unix millis>.txt.
func Text(content string, now time.Time) Document {
	return Document{
		Filename:    fmt.Sprintf("export-%d.txt", now.UnixMilli()),
		ContentType: ContentTypeText,
		Body:        []byte(content),
	}
}

// PDF names the document after title. The body is the plain content; no
// layout is applied.
func PDF(content, title string, now time.Time) Document {
	return Document{
		Filename:    fmt.Sprintf("%s-%d.pdf", whitespaceRun.ReplaceAllString(title, "-"), now.UnixMilli()),
		ContentType: ContentTypePDF,
		Body:        []byte(content),
	}
}

// WriteFile stores doc under dir and returns the full path.
func WriteFile(dir string, doc Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(doc.Filename))
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// SummaryContent renders a summary with its title.
func SummaryContent(s domain.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", s.Title)
	fmt.Fprintf(&b, "%s\n", s.SummaryText)
	return b.String()
}

// ReviewContent renders a completed attempt question by question.
func ReviewContent(r domain.AttemptReview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.QuizTitle)
	fmt.Fprintf(&b, "Score: %d%% (%d correct, %d incorrect)\n", r.Score, r.CorrectCount, r.IncorrectCount)
	fmt.Fprintf(&b, "Completed: %s\n", r.Timestamp.Format(time.RFC1123))
	for _, q := range r.Questions {
		mark := "incorrect"
		if q.Correct {
			mark = "correct"
		}
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", q.Position, q.Question, mark)
		fmt.Fprintf(&b, "   Your answer: %s\n", q.YourAnswer)
		fmt.Fprintf(&b, "   Correct answer: %s\n", q.CorrectAnswer)
		if q.Explanation != "" {
			fmt.Fprintf(&b, "   %s\n", q.Explanation)
		}
	}
	return b.String()
}
