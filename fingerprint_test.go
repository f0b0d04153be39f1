package stateright

import "testing"

func TestFingerprintIsStable(t *testing.T) {
	a := gridState{X: 3, Y: 7}
	b := gridState{X: 3, Y: 7}
	if FingerprintOf(a) != FingerprintOf(b) {
		t.Errorf("Equal states produced different fingerprints: %v and %v", FingerprintOf(a), FingerprintOf(b))
	}
	if FingerprintOf(a) != FingerprintOf(a) {
		t.Errorf("Fingerprint of the same value changed between calls")
	}
}

func TestFingerprintSeparatesStates(t *testing.T) {
	seen := map[Fingerprint]gridState{}
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			s := gridState{X: x, Y: y}
			fp := FingerprintOf(s)
			if prev, ok := seen[fp]; ok {
				t.Errorf("States %v and %v collide on fingerprint %v", prev, s, fp)
			}
			seen[fp] = s
		}
	}
}

type fixedFingerprint struct {
	value int
}

func (fixedFingerprint) Fingerprint() Fingerprint {
	return 12345
}

func TestFingerprinterOverridesDefault(t *testing.T) {
	if fp := FingerprintOf(fixedFingerprint{value: 1}); fp != 12345 {
		t.Errorf("Unexpected fingerprint. Got %v. Expected %v.", fp, Fingerprint(12345))
	}
	if fp := FingerprintOf(fixedFingerprint{value: 2}); fp != 12345 {
		t.Errorf("Expected the Fingerprinter implementation to be used for all values")
	}
}
