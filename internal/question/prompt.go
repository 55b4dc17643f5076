package question

import (
	"fmt"
	"strings"
)

// bufferCount over-provisions by 10% so validator drops rarely force padding.
func bufferCount(count int) int {
	return (count*11 + 9) / 10
}

// maxTokensFor budgets roughly 150 tokens per requested question.
func maxTokensFor(n int) int {
	return 300 + n*150
}

func buildPrompt(topic string, difficulty Difficulty, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple-choice trivia questions about %q at %s difficulty.\n", n, topic, difficulty)
	b.WriteString("Respond with only a JSON array and no surrounding prose. Each element must be an object with:\n")
	b.WriteString(`- "text": the question, at least 10 characters` + "\n")
	b.WriteString(`- "options": an array of exactly 4 distinct answer strings` + "\n")
	b.WriteString(`- "correctOption": the exact text of the correct option` + "\n")
	fmt.Fprintf(&b, `- "timeLimit": seconds to answer, an integer between %d and %d`+"\n", MinTimeLimit, MaxTimeLimit)
	b.WriteString("Questions must be factual, unambiguous and suitable for all ages.")
	return b.String()
}

// stripCodeFences removes a surrounding markdown code block, with or without
// a language tag.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
