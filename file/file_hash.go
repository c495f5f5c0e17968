package file

import (
	"bytes"
	"crypto/sha1"
	"hash"
	"io"
	"os"
)

type Hash [sha1.Size]byte

var EmptyHash Hash

func (h *Hash) Set(b []byte) {
	if len(b) != len(h) {
		panic("internal error: wrong hash size")
	}
	copy(h[:], b)
}

func (h Hash) Eq(h1 Hash) bool {
	return bytes.Equal(h[:], h1[:])
}

func CalcHash(b []byte) Hash {
	return sha1.Sum(b)
}

// NewHasher returns the hash.Hash used for Hash values. Callers feed it
// while streaming a file and finish with HashOf.
func NewHasher() hash.Hash {
	return sha1.New()
}

// HashOf converts the sum of a hasher from NewHasher.
func HashOf(hh hash.Hash) (h Hash) {
	h.Set(hh.Sum(nil))
	return
}

func HashFor(filename string) (h Hash, err error) {
	fd, err := os.Open(filename)
	if err != nil {
		return h, err
	}
	defer fd.Close()

	hh := NewHasher()
	if _, err := io.Copy(hh, fd); err != nil {
		return h, err
	}
	return HashOf(hh), nil
}
