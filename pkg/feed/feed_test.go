package feed_test

import (
	"io"
)

// chunkReader delivers the stream split at fixed boundaries, one chunk per
// Read call, to simulate arbitrary network chunk arrival.
type chunkReader struct {
	chunks [][]byte
	closed bool
}

func newChunkReader(chunks ...string) *chunkReader {
	c := &chunkReader{}
	for _, chunk := range chunks {
		c.chunks = append(c.chunks, []byte(chunk))
	}
	return c
}

// splitEvery splits s into chunks of at most n bytes.
func splitEvery(s string, n int) *chunkReader {
	c := &chunkReader{}
	for len(s) > n {
		c.chunks = append(c.chunks, []byte(s[:n]))
		s = s[n:]
	}
	c.chunks = append(c.chunks, []byte(s))
	return c
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	for len(c.chunks) > 0 && len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]
	return n, nil
}

func (c *chunkReader) Close() error {
	c.closed = true
	return nil
}
