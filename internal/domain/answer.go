package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type answerKind uint8

const (
	answerNone answerKind = iota
	answerIndex
	answerText
)

// Answer is either an option index or free text. On the wire it is a JSON
// number or a JSON string. The zero value means "no answer".
type Answer struct {
	kind  answerKind
	index int
	text  string
}

// IndexAnswer selects options[i].
func IndexAnswer(i int) Answer {
	return Answer{kind: answerIndex, index: i}
}

// TextAnswer is a free-text answer.
func TextAnswer(s string) Answer {
	return Answer{kind: answerText, text: s}
}

// IsZero reports whether no answer was given.
func (a Answer) IsZero() bool { return a.kind == answerNone }

// Index returns the option index and whether the answer is indexed.
func (a Answer) Index() (int, bool) { return a.index, a.kind == answerIndex }

// Text returns the free text and whether the answer is textual.
func (a Answer) Text() (string, bool) { return a.text, a.kind == answerText }

// Equal is strict: an index never equals a string, even "0" and 0.
func (a Answer) Equal(b Answer) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case answerIndex:
		return a.index == b.index
	case answerText:
		return a.text == b.text
	default:
		return true
	}
}

// String renders the answer without any option lookup.
func (a Answer) String() string {
	switch a.kind {
	case answerIndex:
		return strconv.Itoa(a.index)
	case answerText:
		return a.text
	default:
		return ""
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case answerIndex:
		return []byte(strconv.Itoa(a.index)), nil
	case answerText:
		return json.Marshal(a.text)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("answer must be a number or a string: %w", err)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("answer index %v is not an integer", f)
	}
	*a = IndexAnswer(int(f))
	return nil
}
