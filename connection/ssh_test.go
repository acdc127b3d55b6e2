package connection

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pumpTransport(r io.Reader) *SSHTransport {
	t := &SSHTransport{
		chunks:  make(chan []byte, 16),
		readErr: make(chan error, 1),
		closed:  make(chan struct{}),
	}
	go t.pump(r)
	return t
}

func TestReadDeliversPumpedChunks(t *testing.T) {
	tr := pumpTransport(strings.NewReader("Switch#"))

	buf := make([]byte, 64)
	n, err := tr.Read(buf, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Switch#", string(buf[:n]))

	// after the reader drains the channel reports the closed stream
	_, err = tr.Read(buf, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestReadCarriesOverOversizedChunk(t *testing.T) {
	tr := pumpTransport(strings.NewReader("0123456789"))

	buf := make([]byte, 4)
	n, err := tr.Read(buf, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf[:n]))

	n, err = tr.Read(buf, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "4567", string(buf[:n]))

	n, err = tr.Read(buf, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "89", string(buf[:n]))
}

func TestReadTimesOutWithoutData(t *testing.T) {
	blocked := make(chan struct{})
	defer close(blocked)
	tr := pumpTransport(blockingReader{blocked})

	buf := make([]byte, 16)
	_, err := tr.Read(buf, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrReadTimeout)
}

type blockingReader struct {
	release chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.release
	return 0, io.EOF
}
