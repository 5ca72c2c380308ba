// Package testutils holds helpers shared by the framework's tests.
package testutils

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/drpcorg/packbuf/buffer"
)

// Fingerprint hashes a byte region. Tests use it to assert the
// transactional serialization contract: a failed operation must leave
// its buffer bit-identical.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintBuf hashes a Buf's full storage together with its body
// partitioning, so a moved body boundary changes the fingerprint even
// when the bytes do not.
func FingerprintBuf(b *buffer.Buf) uint64 {
	d := xxhash.New()
	var bounds [16]byte
	binary.BigEndian.PutUint64(bounds[:8], uint64(b.PrefixLen()))
	binary.BigEndian.PutUint64(bounds[8:], uint64(b.Len()))
	_, _ = d.Write(bounds[:])
	_, _ = d.Write(b.Storage())
	return d.Sum64()
}

// Pattern fills a slice with a deterministic byte pattern.
func Pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}
