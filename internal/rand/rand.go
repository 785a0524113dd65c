package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" // reduced base64

var charsetLen = len(charset)

var defaultRNG = newRNG()

func newRNG() *lockedRNG {
	seed := make([]byte, 16)
	if _, err := cryptorand.Read(seed); err != nil {
		panic("unreachable")
	}

	return &lockedRNG{
		//nolint:gosec // request ids are log correlation markers, not secrets
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
	}
}

type lockedRNG struct {
	mut sync.Mutex
	rng *rand.Rand
}

// NewRequestID returns a random base62 string of the given length,
// used to correlate a single HTTP exchange across log lines.
func NewRequestID(length int) string {
	buf := make([]byte, length)

	defaultRNG.mut.Lock()
	for i := range buf {
		buf[i] = charset[defaultRNG.rng.IntN(charsetLen)]
	}
	defaultRNG.mut.Unlock()

	return string(buf)
}
