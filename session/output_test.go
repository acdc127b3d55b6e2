package session

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastLine(t *testing.T) {
	assert.Equal(t, "Switch#", lastLine("show version\r\noutput\r\nSwitch#"))
	assert.Equal(t, "Switch#", lastLine("Switch#"))
	assert.Equal(t, "", lastLine("output\n"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "line1\nline2", sanitize("line1\r\nline2"))
	assert.Equal(t, "plain", sanitize("\x1b[2Kplain"))
	assert.Equal(t, "ab", sanitize("a\x08b"))
	assert.Equal(t, "page", sanitize("\rpage"))
}

func TestStripEcho(t *testing.T) {
	assert.Equal(t, "output\nSwitch#", stripEcho("show clock\noutput\nSwitch#", "show clock"))
	// prompt residue ahead of the echoed command
	assert.Equal(t, "output", stripEcho("Switch#show clock\noutput", "show clock"))
	// first line is not the echo: leave the text alone
	assert.Equal(t, "other\noutput", stripEcho("other\noutput", "show clock"))
	assert.Equal(t, "text", stripEcho("text", ""))
}

func TestStripPrompt(t *testing.T) {
	prompt := regexp.MustCompile(`^[\w.-]+# ?$`)

	body, promptLine := stripPrompt("line1\nline2\nSwitch#", prompt)
	assert.Equal(t, "line1\nline2", body)
	assert.Equal(t, "Switch#", promptLine)

	body, promptLine = stripPrompt("no prompt here", prompt)
	assert.Equal(t, "no prompt here", body)
	assert.Empty(t, promptLine)

	body, promptLine = stripPrompt("Switch#", prompt)
	assert.Empty(t, body)
	assert.Equal(t, "Switch#", promptLine)
}
