package http

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/google/uuid"
)

type dangerLevel uint8

const (
	dangerGreen dangerLevel = iota
	dangerYellow
	dangerRed
)

// danger is the per-map hash-flooding defense.
//
// Green uses a fast default hash. When insertions start probing suspiciously
// far from their ideal slot the map escalates to Yellow (monitoring only) and
// then to Red, which switches every lookup to a keyed, collision-resistant
// hash. Red is terminal for the lifetime of the map.
type danger struct {
	level  dangerLevel
	seeded bool
	k0, k1 uint64
}

func (d *danger) seed() {
	u := uuid.New()
	d.k0 = binary.LittleEndian.Uint64(u[:8])
	d.k1 = binary.LittleEndian.Uint64(u[8:])
	d.seeded = true
}

// hash computes the slot hash for a canonical header name. Names are already
// lowercase, so case-insensitivity falls out of canonicalization.
func (d *danger) hash(name HeaderName) uint64 {
	if d.level == dangerRed {
		return siphash.Hash(d.k0, d.k1, unsafeBytes(name.val))
	}

	// Fast default: xxhash with the per-map seed folded in.
	h := xxhash.Sum64String(name.val) ^ d.k0
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}

// displacementLimit is the probe distance at which an insertion is treated as
// evidence of engineered collisions. It scales with the table so that organic
// clustering in small tables does not trip the defense.
func displacementLimit(capacity int) int {
	limit := capacity / 4
	if limit < minDisplacement {
		limit = minDisplacement
	}
	return limit
}

// unsafeBytes converts a string to a byte slice without allocation.
// SAFETY: the caller must not modify the returned slice.
func unsafeBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
