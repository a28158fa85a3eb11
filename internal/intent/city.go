package intent

import (
	"regexp"
	"strings"
)

// cityPatterns are tried in order; the first non-empty cleaned capture wins.
var cityPatterns = []*regexp.Regexp{
	// weather in/of/at/for X
	regexp.MustCompile(`(?i)\b(?:weather|temperature|forecast)\s*(?:in|at|for|of)?\s*([a-z\s]+)`),
	// rain in X
	regexp.MustCompile(`(?i)\b(?:rain|raining|precipitation|storm|snow).*?(?:in|at|for|of)?\s*([a-z\s]+)`),
	// how about X / what about X
	regexp.MustCompile(`(?i)\b(?:how about|what about)\s+([a-z\s]+)`),
	// in/at/for X today
	regexp.MustCompile(`(?i)\b(?:in|at|for|of)\s+([a-z\s]+)\s*(?:today|tomorrow|right now|currently|tonight)?`),
}

type replacement struct {
	re   *regexp.Regexp
	with string
}

var cityCleanup = []replacement{
	{regexp.MustCompile(`[?.!,]`), " "},
	{regexp.MustCompile(`(?i)\bwhat(?:'s| is)?\s+the\s+weather\s+(?:in|at|for|of)?\b`), " "},
	{regexp.MustCompile(`(?i)\b(?:today|tomorrow|tonight|yesterday|now|right now|currently|please)\b`), ""},
	{regexp.MustCompile(`(?i)\s+(?:weather|temperature|forecast|rain|raining|storm|snow|humidity|wind)\b.*$`), ""},
	{regexp.MustCompile(`(?i)^(?:of|in|at|for)\s+`), ""},
	{regexp.MustCompile(`\s+`), " "},
}

const maxFallbackWords = 3

// ExtractCity isolates a lower-cased city name from free-form text. It is a
// best-effort heuristic: when none of the patterns capture anything the whole
// cleaned text is accepted if it is at most three words long.
func ExtractCity(text string) (string, bool) {
	normalized := strings.ToLower(text)

	for _, pattern := range cityPatterns {
		match := pattern.FindStringSubmatch(normalized)
		if len(match) < 2 || match[1] == "" {
			continue
		}
		if city := cleanCity(match[1]); city != "" {
			return city, true
		}
	}

	fallback := cleanCity(normalized)
	if fallback != "" && len(strings.Split(fallback, " ")) <= maxFallbackWords {
		return fallback, true
	}

	return "", false
}

func cleanCity(value string) string {
	for _, r := range cityCleanup {
		value = r.re.ReplaceAllString(value, r.with)
	}
	return strings.TrimSpace(value)
}
