package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lshigami/certpool/internal/model"
)

const MaxOptions = 4

var (
	// ErrMalformedRecord marks a record that has text but cannot become a
	// valid question (no usable options, or clashing option labels).
	ErrMalformedRecord = errors.New("malformed question record")
	// ErrMissingText marks a record without question text. Such records are
	// dropped quietly rather than reported.
	ErrMissingText = errors.New("question record has no text")
)

// RawOption is one answer choice as a provider returned it: either an object
// with letter/label and text, or a plain string such as "B) Amazon S3".
type RawOption struct {
	Letter    string `json:"letter,omitempty"`
	Label     string `json:"label,omitempty"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

func (o *RawOption) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		o.Letter, o.Text = splitLabeledOption(s)
		return nil
	}
	type plain RawOption
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = RawOption(p)
	return nil
}

// RawRecord accepts the field spellings seen across providers and import files.
type RawRecord struct {
	QuestionText        string      `json:"question_text,omitempty"`
	Question            string      `json:"question,omitempty"`
	Options             []RawOption `json:"options,omitempty"`
	Answers             []RawOption `json:"answers,omitempty"`
	CorrectAnswerLetter string      `json:"correct_answer_letter,omitempty"`
	CorrectAnswer       string      `json:"correct_answer,omitempty"`
	Explanation         string      `json:"explanation,omitempty"`
	Domain              string      `json:"domain,omitempty"`
	Difficulty          string      `json:"difficulty,omitempty"`
}

type Option struct {
	Letter    string
	Text      string
	IsCorrect bool
}

// QuestionRecord is a normalized question ready for persistence.
type QuestionRecord struct {
	Text        string
	Domain      string
	Difficulty  string
	Explanation string
	Options     []Option
}

// ToModel builds an unsaved question with its answers.
func (r QuestionRecord) ToModel(examID uint) model.Question {
	answers := make([]model.Answer, 0, len(r.Options))
	for _, o := range r.Options {
		answers = append(answers, model.Answer{Letter: o.Letter, Text: o.Text, IsCorrect: o.IsCorrect})
	}
	return model.Question{
		ExamID:       examID,
		QuestionText: r.Text,
		TextHash:     model.HashQuestionText(r.Text),
		Domain:       r.Domain,
		Difficulty:   r.Difficulty,
		Explanation:  r.Explanation,
		Answers:      answers,
	}
}

func Normalize(raw RawRecord) (QuestionRecord, error) {
	text := strings.TrimSpace(raw.QuestionText)
	if text == "" {
		text = strings.TrimSpace(raw.Question)
	}
	if text == "" {
		return QuestionRecord{}, ErrMissingText
	}

	opts := raw.Options
	if len(opts) == 0 {
		opts = raw.Answers
	}

	if len(opts) > MaxOptions {
		opts = opts[:MaxOptions]
	}

	rec := QuestionRecord{
		Text:        text,
		Domain:      strings.TrimSpace(raw.Domain),
		Difficulty:  model.NormalizeDifficulty(raw.Difficulty),
		Explanation: strings.TrimSpace(raw.Explanation),
	}

	seen := make(map[string]struct{}, MaxOptions)
	flagged := make([]bool, 0, MaxOptions)
	for _, o := range opts {
		optText := strings.TrimSpace(o.Text)
		if optText == "" {
			continue
		}
		letter := strings.TrimSpace(o.Letter)
		if letter == "" {
			letter = strings.TrimSpace(o.Label)
		}
		if letter == "" {
			letter = optText
		}
		letter = firstChar(letter)

		if _, dup := seen[letter]; dup {
			return QuestionRecord{}, fmt.Errorf("%w: duplicate option label %q", ErrMalformedRecord, letter)
		}
		seen[letter] = struct{}{}

		rec.Options = append(rec.Options, Option{Letter: letter, Text: optText})
		flagged = append(flagged, o.IsCorrect)
	}

	if len(rec.Options) == 0 {
		return QuestionRecord{}, fmt.Errorf("%w: no usable options", ErrMalformedRecord)
	}

	if i := correctIndex(raw, rec.Options, flagged); i >= 0 {
		rec.Options[i].IsCorrect = true
	}
	return rec, nil
}

// correctIndex picks at most one correct option. correct_answer_letter wins;
// correct_answer counts only as a bare letter, a "B) text" label or an exact
// option text; per-option is_correct flags are the last resort.
func correctIndex(raw RawRecord, opts []Option, flagged []bool) int {
	byLetter := func(letter string) int {
		for i, o := range opts {
			if o.Letter == letter {
				return i
			}
		}
		return -1
	}

	if l := strings.TrimSpace(raw.CorrectAnswerLetter); l != "" {
		return byLetter(firstChar(l))
	}

	if ca := strings.TrimSpace(raw.CorrectAnswer); ca != "" {
		if utf8.RuneCountInString(ca) == 1 {
			return byLetter(strings.ToUpper(ca))
		}
		if letter, _ := splitLabeledOption(ca); letter != "" {
			return byLetter(letter)
		}
		for i, o := range opts {
			if strings.EqualFold(o.Text, ca) {
				return i
			}
		}
		return -1
	}

	for i, f := range flagged {
		if f {
			return i
		}
	}
	return -1
}

// splitLabeledOption turns "B) text", "B. text" or "B: text" into ("B", "text").
func splitLabeledOption(s string) (string, string) {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && isLetter(s[0]) && strings.ContainsRune(").:", rune(s[1])) && s[2] == ' ' {
		return strings.ToUpper(s[:1]), strings.TrimSpace(s[3:])
	}
	return "", s
}

func firstChar(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
