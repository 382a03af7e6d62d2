package story

import "strings"

const (
	SummaryWindow = 5
	SummaryMaxLen = 1200
)

// Summarize joins the last SummaryWindow non-empty events. When the result
// is longer than SummaryMaxLen runes only the tail is kept.
func Summarize(events []string) string {
	recent := make([]string, 0, SummaryWindow)
	for i := len(events) - 1; i >= 0 && len(recent) < SummaryWindow; i-- {
		if e := strings.TrimSpace(events[i]); e != "" {
			recent = append(recent, e)
		}
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	summary := []rune(strings.Join(recent, " "))
	if len(summary) <= SummaryMaxLen {
		return string(summary)
	}
	return "…" + string(summary[len(summary)-SummaryMaxLen+1:])
}
