package stateright

import (
	"fmt"
	"hash/fnv"
)

// A Fingerprint is a deterministic hash of a state used as the deduplication
// key during exploration.
//
// Two distinct states with colliding fingerprints are treated as identical by
// the checker. The collision probability is bounded by the 64 bit hash width
// and is accepted as a probabilistic soundness caveat. Collisions are not
// detectable at runtime.
type Fingerprint uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Fingerprinter can be implemented by state types that want to control their
// own fingerprint, for example to ignore fields that are not part of the
// logical state.
type Fingerprinter interface {
	Fingerprint() Fingerprint
}

// FingerprintOf computes the fingerprint of a state.
//
// States implementing Fingerprinter are asked directly. All other values are
// hashed over their canonical Go-syntax rendering with FNV-1a. The rendering
// is deterministic for structs, slices and maps (fmt prints map keys in
// sorted order), so value-equal states always produce equal fingerprints.
func FingerprintOf(v any) Fingerprint {
	if f, ok := v.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%#v", v)
	return Fingerprint(h.Sum64())
}
