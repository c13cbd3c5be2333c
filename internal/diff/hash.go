package diff

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"
)

// Hash is a content digest of a Diff. It is only ever compared for
// equality. The zero value is a sentinel that HashOf never returns.
type Hash struct {
	sum [sha256.Size]byte
	ok  bool
}

// IsZero reports whether h is the sentinel.
func (h Hash) IsZero() bool { return !h.ok }

// Serialization tags. Hunk boundaries are part of the stream so that moving
// a line between hunks changes the digest.
const (
	tagHunk byte = 0xfe
	tagLine byte = 0xfd
)

// HashOf digests the full line stream of d: every hunk boundary, and for
// each line its type and length-prefixed content.
func HashOf(d Diff) Hash {
	h := sha256.New()
	var buf [1 + binary.MaxVarintLen64]byte

	for _, hunk := range d.Hunks {
		writeTagged(h, &buf, tagHunk, uint64(len(hunk.Lines)))
		for _, l := range hunk.Lines {
			writeTagged(h, &buf, tagLine, uint64(len(l.Content)))
			buf[0] = byte(l.Type.normalize())
			h.Write(buf[:1])
			_, _ = io.WriteString(h, l.Content)
		}
	}

	out := Hash{ok: true}
	h.Sum(out.sum[:0])
	return out
}

func writeTagged(h hash.Hash, buf *[1 + binary.MaxVarintLen64]byte, tag byte, n uint64) {
	buf[0] = tag
	k := binary.PutUvarint(buf[1:], n)
	h.Write(buf[:1+k])
}
