package question

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"
)

// RejectReason names why a candidate was dropped.
type RejectReason string

const (
	RejectMalformed      RejectReason = "malformed"
	RejectTextTooShort   RejectReason = "text_too_short"
	RejectOptionCount    RejectReason = "option_count"
	RejectCorrectUnmatch RejectReason = "correct_option_unmatched"
)

// RejectionTally counts dropped candidates per reason.
type RejectionTally map[RejectReason]int

// Total is the number of dropped candidates.
func (t RejectionTally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Labels converts the tally for metrics and log fields.
func (t RejectionTally) Labels() map[string]int {
	out := make(map[string]int, len(t))
	for k, v := range t {
		out[string(k)] = v
	}
	return out
}

// candidateSchema is the minimum shape a model candidate needs before repair
// is attempted. Option element types are checked during coercion instead.
const candidateSchema = `{
	"type": "object",
	"properties": {
		"text": {"type": "string"},
		"options": {"type": "array"},
		"correctOption": {"type": "string"}
	},
	"required": ["text", "options", "correctOption"]
}`

var compiledCandidateSchema = mustCompileSchema(candidateSchema)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic("question: invalid candidate schema: " + err.Error())
	}
	return schema
}

// Validate filters untrusted candidates down to well-formed questions,
// repairing the correct option where it can be matched unambiguously. Bad
// candidates are dropped and tallied, never returned as errors.
func Validate(candidates []any, params GenerationParams) ([]Question, RejectionTally) {
	accepted := make([]Question, 0, len(candidates))
	tally := RejectionTally{}
	for _, c := range candidates {
		q, reason, ok := repairCandidate(c, params.Difficulty)
		if !ok {
			tally[reason]++
			continue
		}
		accepted = append(accepted, q)
	}
	return accepted, tally
}

func repairCandidate(candidate any, difficulty Difficulty) (Question, RejectReason, bool) {
	if !hasCandidateShape(candidate) {
		return Question{}, RejectMalformed, false
	}
	fields := candidate.(map[string]any)

	text := strings.TrimSpace(fields["text"].(string))
	if utf8.RuneCountInString(text) < MinTextLength {
		return Question{}, RejectTextTooShort, false
	}

	rawOptions, _ := asSlice(fields["options"])
	options := make([]string, 0, len(rawOptions))
	for _, o := range rawOptions {
		if s := coerceOption(o); s != "" {
			options = append(options, s)
		}
	}
	if len(options) != OptionCount {
		return Question{}, RejectOptionCount, false
	}

	correct, ok := resolveCorrectOption(fields["correctOption"].(string), options)
	if !ok {
		return Question{}, RejectCorrectUnmatch, false
	}

	return Question{
		Text:          text,
		Options:       options,
		CorrectOption: correct,
		TimeLimit:     resolveTimeLimit(fields["timeLimit"], difficulty),
		Difficulty:    difficulty,
	}, "", true
}

func hasCandidateShape(candidate any) bool {
	fields, ok := candidate.(map[string]any)
	if !ok {
		return false
	}
	result, err := compiledCandidateSchema.Validate(gojsonschema.NewGoLoader(fields))
	if err != nil || !result.Valid() {
		return false
	}
	// The schema accepts any array; Go callers may also hand over typed slices.
	_, ok = asSlice(fields["options"])
	return ok
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

// coerceOption renders scalar option values as trimmed text. Nulls, objects
// and nested arrays become empty and are dropped by the caller.
func coerceOption(v any) string {
	switch o := v.(type) {
	case string:
		return strings.TrimSpace(o)
	case float64:
		return strconv.FormatFloat(o, 'f', -1, 64)
	case json.Number:
		return strings.TrimSpace(o.String())
	case int:
		return strconv.Itoa(o)
	case int64:
		return strconv.FormatInt(o, 10)
	case bool:
		return strconv.FormatBool(o)
	}
	return ""
}

// resolveCorrectOption matches the model's answer against the cleaned options:
// exact, then case-insensitive, then case-insensitive containment either way.
// The returned value is always the option's own text.
func resolveCorrectOption(raw string, options []string) (string, bool) {
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", false
	}
	for _, o := range options {
		if o == answer {
			return o, true
		}
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, true
		}
	}
	lowered := strings.ToLower(answer)
	for _, o := range options {
		lo := strings.ToLower(o)
		if strings.Contains(lo, lowered) || strings.Contains(lowered, lo) {
			return o, true
		}
	}
	return "", false
}

func resolveTimeLimit(v any, difficulty Difficulty) int {
	var seconds float64
	switch n := v.(type) {
	case float64:
		seconds = n
	case int:
		seconds = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return difficulty.DefaultTimeLimit()
		}
		seconds = f
	default:
		return difficulty.DefaultTimeLimit()
	}
	if math.IsNaN(seconds) || seconds < MinTimeLimit || seconds > MaxTimeLimit {
		return difficulty.DefaultTimeLimit()
	}
	return int(math.Round(seconds))
}
