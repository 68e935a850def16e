package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quizweb/internal/common"
)

const (
	// OptionCount is the number of choices every question carries.
	OptionCount = 4

	// OptionSeparator joins options into the single stored column.
	OptionSeparator = "|"
)

// Question is one multiple-choice item of the bank. CorrectIndex is 1-based.
type Question struct {
	ID           int64
	SeedKey      string
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Validate checks the shape invariants: a key and prompt, exactly
// OptionCount non-empty options, and CorrectIndex inside them.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.SeedKey) == "" {
		return fmt.Errorf("%w: empty seed key", common.ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: %s: empty prompt", common.ErrInvalidQuestion, q.SeedKey)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: %s: want %d options, got %d", common.ErrInvalidQuestion, q.SeedKey, OptionCount, len(q.Options))
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: %s: option %d is empty", common.ErrInvalidQuestion, q.SeedKey, i+1)
		}
		if strings.Contains(o, OptionSeparator) {
			return fmt.Errorf("%w: %s: option %d contains %q", common.ErrInvalidQuestion, q.SeedKey, i+1, OptionSeparator)
		}
	}
	if q.CorrectIndex < 1 || q.CorrectIndex > len(q.Options) {
		return fmt.Errorf("%w: %s: correct index %d out of range", common.ErrInvalidQuestion, q.SeedKey, q.CorrectIndex)
	}
	return nil
}

// IsCorrect grades a 0-based selection. Anything outside the option range,
// including -1 for "nothing chosen", is wrong.
func (q *Question) IsCorrect(selected int) bool {
	return selected+1 == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q *Question) CorrectOption() string {
	if q.CorrectIndex < 1 || q.CorrectIndex > len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex-1]
}

// SameContent reports whether two questions would render identically.
func (q *Question) SameContent(o *Question) bool {
	return q.Prompt == o.Prompt &&
		q.CorrectIndex == o.CorrectIndex &&
		JoinOptions(q.Options) == JoinOptions(o.Options)
}

// JoinOptions serializes options for storage.
func JoinOptions(options []string) string {
	return strings.Join(options, OptionSeparator)
}

// SplitOptions parses the stored column back into trimmed options.
func SplitOptions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, OptionSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
