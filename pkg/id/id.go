// Package id generates time-ordered identifiers in Crockford base32.
package id

import (
	"crypto/rand"
	"time"
)

// Crockford's base32 alphabet, without I, L, O and U.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID: 48 bits of Unix milliseconds
// followed by 80 random bits. ULIDs sort by creation time.
func NewULID() string {
	return encode(uint64(time.Now().UnixMilli()), 48, 80)
}

// NewShortID returns a 16-character identifier: the low 30 bits of Unix
// milliseconds followed by 50 random bits.
// The time prefix wraps about every 12 days, so ShortIDs only sort
// within that window. Use them for record keys, not for ordering.
func NewShortID() string {
	return encode(uint64(time.Now().UnixMilli()), 30, 50)
}

// encode packs timeBits of ts and randBits of fresh randomness, most
// significant bit first, into 5-bit alphabet symbols.
func encode(ts uint64, timeBits, randBits int) string {
	rnd := make([]byte, (randBits+7)/8)
	_, _ = rand.Read(rnd) // never fails

	bit := func(k int) byte {
		if k < timeBits {
			return byte(ts>>(timeBits-1-k)) & 1
		}
		k -= timeBits
		return (rnd[k/8] >> (7 - k%8)) & 1
	}

	out := make([]byte, (timeBits+randBits)/5)
	for i := range out {
		var sym byte
		for j := range 5 {
			sym = sym<<1 | bit(i*5+j)
		}
		out[i] = alphabet[sym]
	}
	return string(out)
}
