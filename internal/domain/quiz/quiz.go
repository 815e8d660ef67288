package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Step is one challenge in the sequence: a prompt shown to the user and the
// answer that advances them.
type Step struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Sequence is an ordered, immutable list of challenge steps shared read-only
// by all sessions. Answers are normalized once at construction.
type Sequence struct {
	steps []Step
}

// NewSequence builds a sequence, normalizing every expected answer.
func NewSequence(steps []Step) (Sequence, error) {
	if len(steps) == 0 {
		return Sequence{}, errors.New("sequence must have at least one step")
	}
	normalized := make([]Step, len(steps))
	for i, s := range steps {
		prompt := strings.TrimSpace(s.Prompt)
		answer := Normalize(s.Answer)
		if prompt == "" {
			return Sequence{}, fmt.Errorf("step %d: prompt is required", i)
		}
		if answer == "" {
			return Sequence{}, fmt.Errorf("step %d: answer is required", i)
		}
		normalized[i] = Step{Prompt: prompt, Answer: answer}
	}
	return Sequence{steps: normalized}, nil
}

// DefaultSequence returns the built-in three-task quest.
func DefaultSequence() Sequence {
	seq, err := NewSequence([]Step{
		{Prompt: "Task 1: What comes after 1, 2, 3...?", Answer: "4"},
		{Prompt: "Task 2: Type the secret password (hint: it's 'open').", Answer: "open"},
		{Prompt: "Task 3: What is 5 + 5?", Answer: "10"},
	})
	if err != nil {
		panic(err)
	}
	return seq
}

// LoadSequence reads a JSON array of steps from path.
func LoadSequence(path string) (Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Sequence{}, fmt.Errorf("failed to read quiz file: %w", err)
	}
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return Sequence{}, fmt.Errorf("failed to parse quiz file %s: %w", path, err)
	}
	return NewSequence(steps)
}

func (s Sequence) Len() int {
	return len(s.steps)
}

// Prompt returns the display text for stepIndex.
func (s Sequence) Prompt(stepIndex int) (string, error) {
	if stepIndex < 0 || stepIndex >= len(s.steps) {
		return "", fmt.Errorf("step index %d out of range [0,%d)", stepIndex, len(s.steps))
	}
	return s.steps[stepIndex].Prompt, nil
}

// Evaluate reports whether raw, normalized, matches the expected answer for
// stepIndex. An out-of-range index is a contract violation upstream.
func (s Sequence) Evaluate(stepIndex int, raw string) (bool, error) {
	if stepIndex < 0 || stepIndex >= len(s.steps) {
		return false, fmt.Errorf("step index %d out of range [0,%d)", stepIndex, len(s.steps))
	}
	return Normalize(raw) == s.steps[stepIndex].Answer, nil
}

// Normalize trims surrounding whitespace and lower-cases the input. No
// partial credit, no fuzzy matching.
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
