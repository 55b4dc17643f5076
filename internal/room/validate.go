package room

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

// blockedTopicTerms is a shallow guard, not a moderation system.
var blockedTopicTerms = map[string]struct{}{
	"porn":        {},
	"pornography": {},
	"nsfw":        {},
	"xxx":         {},
	"hentai":      {},
	"nude":        {},
	"nudity":      {},
	"gore":        {},
	"sexual":      {},
}

// TopicAllowed reports whether a topic passes the appropriateness check.
func TopicAllowed(topic string) bool {
	words := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if _, blocked := blockedTopicTerms[w]; blocked {
			return false
		}
	}
	return true
}

// ValidateRequest checks everything that can make creation fail regardless
// of which backend handles it.
func ValidateRequest(req CreateRequest) error {
	var details []string
	if strings.TrimSpace(req.Nickname) == "" {
		details = append(details, "nickname is required")
	}

	params := question.GenerationParams{Topic: req.Topic, Difficulty: req.Difficulty, Count: req.QuestionCount}
	if err := params.Validate(); err != nil {
		var vErr *question.ValidationError
		if errors.As(err, &vErr) {
			details = append(details, vErr.Details...)
		} else {
			details = append(details, err.Error())
		}
	}
	if strings.TrimSpace(req.Topic) != "" && !TopicAllowed(req.Topic) {
		details = append(details, "topic is not appropriate")
	}

	if len(details) > 0 {
		return &question.ValidationError{Message: "invalid room request", Details: details}
	}
	return nil
}

// validatePregenerated rejects supplied questions outright; unlike model
// output they are never repaired.
func validatePregenerated(req CreateRequest) error {
	if err := ValidateRequest(req); err != nil {
		return err
	}
	if len(req.Questions) != req.QuestionCount {
		return &question.ValidationError{
			Message: "invalid room request",
			Details: []string{fmt.Sprintf("expected %d questions, got %d", req.QuestionCount, len(req.Questions))},
		}
	}

	var details []string
	for i, q := range req.Questions {
		for _, problem := range questionProblems(q) {
			details = append(details, fmt.Sprintf("question %d: %s", i+1, problem))
		}
	}
	if len(details) > 0 {
		return &question.ValidationError{Message: "invalid room request", Details: details}
	}
	return nil
}

func questionProblems(q question.Question) []string {
	var problems []string
	if utf8.RuneCountInString(strings.TrimSpace(q.Text)) < question.MinTextLength {
		problems = append(problems, fmt.Sprintf("text must be at least %d characters", question.MinTextLength))
	}

	if len(q.Options) != question.OptionCount {
		problems = append(problems, fmt.Sprintf("exactly %d options are required", question.OptionCount))
	} else if slices.ContainsFunc(q.Options, func(o string) bool { return strings.TrimSpace(o) == "" }) {
		problems = append(problems, "options must not be empty")
	}
	if !slices.Contains(q.Options, q.CorrectOption) {
		problems = append(problems, "correctOption must be one of the options")
	}

	if q.TimeLimit < question.MinTimeLimit || q.TimeLimit > question.MaxTimeLimit {
		problems = append(problems, fmt.Sprintf("timeLimit must be between %d and %d", question.MinTimeLimit, question.MaxTimeLimit))
	}
	if !q.Difficulty.Valid() {
		problems = append(problems, "difficulty must be one of easy, medium, hard")
	}
	return problems
}
