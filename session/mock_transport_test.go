package session

import (
	"time"

	"github.com/charlesren/netcli/connection"
)

// scriptTransport replays scripted byte chunks, delivering one chunk per
// Read call. Chunks may be queued up front (login banner) or registered
// against an exact written string (command echo + output + prompt). Each
// registered response is consumed by one matching write, so repeated
// writes of the same continuation keystroke walk through the pages in
// order. An empty queue reads as an inactivity timeout.
type scriptTransport struct {
	queue     [][]byte
	responses map[string][][][]byte
	writes    []string
	closed    bool
}

func newScriptTransport() *scriptTransport {
	return &scriptTransport{responses: make(map[string][][][]byte)}
}

func (t *scriptTransport) queueChunks(chunks ...string) {
	for _, c := range chunks {
		t.queue = append(t.queue, []byte(c))
	}
}

func (t *scriptTransport) queueBytes(chunks ...[]byte) {
	t.queue = append(t.queue, chunks...)
}

// onWrite registers one response (a sequence of chunks) for the next
// write of input. Commands arrive with their line terminator, keystrokes
// without.
func (t *scriptTransport) onWrite(input string, chunks ...string) {
	group := make([][]byte, 0, len(chunks))
	for _, c := range chunks {
		group = append(group, []byte(c))
	}
	t.responses[input] = append(t.responses[input], group)
}

func (t *scriptTransport) Read(p []byte, timeout time.Duration) (int, error) {
	if t.closed {
		return 0, connection.ErrClosed
	}
	if len(t.queue) == 0 {
		return 0, connection.ErrReadTimeout
	}
	chunk := t.queue[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		t.queue[0] = chunk[n:]
	} else {
		t.queue = t.queue[1:]
	}
	return n, nil
}

func (t *scriptTransport) Write(p []byte) error {
	if t.closed {
		return connection.ErrClosed
	}
	t.writes = append(t.writes, string(p))
	if groups := t.responses[string(p)]; len(groups) > 0 {
		t.queue = append(t.queue, groups[0]...)
		t.responses[string(p)] = groups[1:]
	}
	return nil
}

func (t *scriptTransport) Close() error {
	t.closed = true
	return nil
}

func (t *scriptTransport) countWrites(input string) int {
	n := 0
	for _, w := range t.writes {
		if w == input {
			n++
		}
	}
	return n
}
