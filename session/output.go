package session

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// lastLine returns the final line of text with the trailing CR removed,
// the region prompt patterns are matched against.
func lastLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSuffix(text, "\r")
}

// sanitize normalizes decoded device output: CRLF to LF, stray CR and
// backspaces dropped, ANSI escape sequences stripped. Cursor semantics
// are not emulated.
func sanitize(text string) string {
	text = ansiEscape.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\x08", "")
	return text
}

// stripEcho removes the echoed command line from the head of the output.
// Most device shells echo input; the echo line may carry prompt residue
// before the command itself.
func stripEcho(text, command string) string {
	if command == "" {
		return text
	}
	head, rest, found := strings.Cut(text, "\n")
	if !found {
		if strings.HasSuffix(strings.TrimRight(head, " "), command) {
			return ""
		}
		return text
	}
	if strings.HasSuffix(strings.TrimRight(head, " "), command) {
		return rest
	}
	return text
}

// stripPrompt removes the trailing prompt line, returning the body and
// the prompt line itself.
func stripPrompt(text string, prompt *regexp.Regexp) (body, promptLine string) {
	i := strings.LastIndexByte(text, '\n')
	last := text[i+1:]
	if prompt.MatchString(last) {
		if i < 0 {
			return "", last
		}
		return text[:i], last
	}
	return text, ""
}
