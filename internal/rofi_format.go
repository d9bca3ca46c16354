package internal

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"time"
)

// Label formatting for the rofi menu. rofi renders Pango markup, so item
// text is escaped and newlines are collapsed into a marked separator.

const lineBreakMark = "<span> * </span>"

var (
	brokenLinePattern = regexp.MustCompile(` *\n *`)
	multiSpacePattern = regexp.MustCompile(` +`)
	spanGapPattern    = regexp.MustCompile(`</span> +`)
)

func MenuPrompt(version string) string {
	return fmt.Sprintf("Clipton %s | Alt+1 Delete | Alt+(2-9) Join | Alt+0 Clear", version)
}

// FormatMenuLines renders one rofi row per item: an age column, a line
// count column, the collapsed text and the URL title if one was fetched.
func FormatMenuLines(items []Item, now time.Time) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, formatMenuLine(item, now))
	}
	return lines
}

func formatMenuLine(item Item, now time.Time) string {
	line := strings.TrimSpace(item.Text)
	line = html.EscapeString(line)
	line = brokenLinePattern.ReplaceAllString(line, "\n")
	line = strings.ReplaceAll(line, "\n", lineBreakMark)
	line = multiSpacePattern.ReplaceAllString(line, " ")
	line = spanGapPattern.ReplaceAllString(line, "</span>")

	numLines := padRight(fmt.Sprintf("%d)", item.NumLines), 5)
	mins := int(math.Round(float64(now.Unix()-item.Date) / 60))
	timeago := Timeago(mins)

	if title := strings.TrimSpace(strings.ReplaceAll(item.Title, "\n", "")); title != "" {
		line += fmt.Sprintf(" (%s)", html.EscapeString(title))
	}

	return fmt.Sprintf("<span>%s(Lines: %s</span>%s", timeago, numLines, line)
}

// Timeago buckets an age in minutes into a fixed-width column.
func Timeago(mins int) string {
	var timeago string

	switch {
	case mins >= 1440:
		timeago = fmt.Sprintf("%s days", fillnum(int(math.Round(float64(mins)/1440))))
	case mins >= 60:
		timeago = fmt.Sprintf("%s hours", fillnum(int(math.Round(float64(mins)/60))))
	case mins >= 1:
		timeago = fmt.Sprintf("%s mins", fillnum(mins))
	default:
		timeago = "just now"
	}

	return padRight(fmt.Sprintf("(%s)", timeago), 12)
}

func fillnum(num int) string {
	return fmt.Sprintf("%02d", num)
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
