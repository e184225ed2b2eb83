package searchschema

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"sync"
)

const (
	// suffixMin is the smallest index name suffix, so every suffix has the same width.
	suffixMin uint64 = 100_000_000_000
	// suffixSpan is the number of distinct suffixes.
	suffixSpan uint64 = 900_000_000_000
)

// Namer generates collision-resistant index names.
// Names are never handed out twice by the same Namer.
type Namer struct {
	mu     sync.Mutex
	rand   io.Reader
	issued map[string]struct{}
}

// NewNamer creates a Namer backed by crypto/rand.
func NewNamer() *Namer {
	return NewNamerWithReader(rand.Reader)
}

// NewNamerWithReader creates a Namer drawing randomness from r, eight bytes per suffix.
func NewNamerWithReader(r io.Reader) *Namer {
	return &Namer{
		rand:   r,
		issued: make(map[string]struct{}),
	}
}

// Next returns a fresh index name for bucket, "<bucket>_<12 digits>".
func (n *Namer) Next(bucket string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var buf [8]byte
	for {
		if _, err := io.ReadFull(n.rand, buf[:]); err != nil {
			return "", fmt.Errorf("failed to generate index name suffix: %w", err)
		}
		suffix := suffixMin + binary.BigEndian.Uint64(buf[:])%suffixSpan

		name := bucket + "_" + strconv.FormatUint(suffix, 10)
		if _, ok := n.issued[name]; ok {
			continue
		}

		n.issued[name] = struct{}{}
		return name, nil
	}
}
