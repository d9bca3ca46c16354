package internal

import (
	"strings"
	"time"
	"unicode"
)

// Item is one recorded clipboard entry. The JSON tags are the wire format
// of the items file and must not change.
type Item struct {
	Text     string `json:"text"`
	Date     int64  `json:"date"`
	NumLines int    `json:"num_lines"`
	Title    string `json:"title"`
}

func NewItem(text, title string, now time.Time) Item {
	return Item{
		Text:     text,
		Date:     now.Unix(),
		NumLines: strings.Count(text, "\n") + 1,
		Title:    title,
	}
}

func containsSpace(text string) bool {
	return strings.IndexFunc(text, unicode.IsSpace) >= 0
}

// isBareURL reports whether text is a lone https URL, the only kind of
// text eligible for title resolution.
func isBareURL(text string) bool {
	return strings.HasPrefix(text, "https://") && !containsSpace(text)
}
