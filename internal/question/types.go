package question

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Difficulty is the question tier requested by the host.
type Difficulty string

// Difficulty constants for readability.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Limits shared by generation requests and room creation.
const (
	MinQuestionCount = 1
	MaxQuestionCount = 35
	MaxTopicLength   = 100
	MinTextLength    = 10
	OptionCount      = 4
	MinTimeLimit     = 5
	MaxTimeLimit     = 60
)

// ParseDifficulty normalises raw input into a known tier.
func ParseDifficulty(raw string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", raw)
}

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DefaultTimeLimit is the per-tier answer window used when a candidate's own
// value is missing or out of range.
func (d Difficulty) DefaultTimeLimit() int {
	switch d {
	case DifficultyEasy:
		return 15
	case DifficultyMedium:
		return 25
	case DifficultyHard:
		return 35
	}
	return 20
}

// Question is a validated multiple-choice question. CorrectOption is always
// one of Options.
type Question struct {
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectOption string     `json:"correctOption"`
	TimeLimit     int        `json:"timeLimit"`
	Difficulty    Difficulty `json:"difficulty"`
}

// GenerationParams describes one generation request.
type GenerationParams struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

// Validate reports every rule the params violate.
func (p GenerationParams) Validate() error {
	var details []string
	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		details = append(details, "topic is required")
	} else if utf8.RuneCountInString(topic) > MaxTopicLength {
		details = append(details, fmt.Sprintf("topic must be at most %d characters", MaxTopicLength))
	}
	if !p.Difficulty.Valid() {
		details = append(details, "difficulty must be one of easy, medium, hard")
	}
	if p.Count < MinQuestionCount || p.Count > MaxQuestionCount {
		details = append(details, fmt.Sprintf("count must be between %d and %d", MinQuestionCount, MaxQuestionCount))
	}
	if len(details) > 0 {
		return &ValidationError{Message: "invalid generation request", Details: details}
	}
	return nil
}

// GenerationResult always holds exactly the requested number of questions.
type GenerationResult struct {
	Questions      []Question `json:"questions"`
	AIGenerated    bool       `json:"aiGenerated"`
	FallbackReason string     `json:"fallbackReason,omitempty"`
}

// ValidationError is returned for caller input that can never succeed.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}
