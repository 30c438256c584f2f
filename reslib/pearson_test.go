package reslib

import "testing"

// pearsonHash("abcd") is a fixed regression value worked out by hand from
// pearsonTable: each of the four lanes only ever sees one byte (the input
// is exactly four bytes long), so h[i] = pearsonTable[i-th input byte],
// giving h = [pearsonTable[97], pearsonTable[98], pearsonTable[99],
// pearsonTable[100]] = [1, 96, 18, 19], composed as
// h3<<24|h2<<16|h1<<8|h0 = 19<<24 | 18<<16 | 96<<8 | 1 = 319971329.
func TestPearsonHashAbcdRegression(t *testing.T) {
	s := "abcd"
	const want = uint32(319971329)
	if got := pearsonHash(&s); got != want {
		t.Fatalf("pearsonHash(%q) = %d, want %d", s, got, want)
	}
}

func TestPearsonHashNilIsZero(t *testing.T) {
	if got := pearsonHash(nil); got != 0 {
		t.Fatalf("pearsonHash(nil) = %d, want 0", got)
	}
}

func TestPearsonHashStopsAtNulByte(t *testing.T) {
	withTail := "abcdXXXX"
	withTail = withTail[:4] + "\x00" + "rest"
	truncated := "abcd"

	got := pearsonHash(&withTail)
	want := pearsonHash(&truncated)
	if got != want {
		t.Fatalf("pearsonHash with embedded NUL = %d, want %d (same as %q)", got, want, truncated)
	}
}

func TestPearsonHashDiffersForDifferentStrings(t *testing.T) {
	a, b := "abcd", "abce"
	if pearsonHash(&a) == pearsonHash(&b) {
		t.Fatalf("expected different hashes for %q and %q", a, b)
	}
}

func TestPearsonHashIsDeterministic(t *testing.T) {
	s := "control-system-resource"
	if pearsonHash(&s) != pearsonHash(&s) {
		t.Fatalf("pearsonHash is not deterministic for %q", s)
	}
}
