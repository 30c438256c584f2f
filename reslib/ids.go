package reslib

// ID is the identifier contract a Table's key type must satisfy: equality,
// a hash, and the construction-time bit-width bounds that size the table
// (minIndexBitWidth) and bound the mixer's folding (maxIndexBitWidth).
// Storage for an ID's key material must outlive every record that
// references it while it is a member of a Table.
type ID interface {
	// Hash returns the identifier's unmasked hash. The table masks it to
	// the current bucket-index width; implementations should not mask.
	Hash() uint64
	// Equal reports whether other is an identifier of the same concrete
	// type with equal key material.
	Equal(other ID) bool
	// MinIndexBitWidth is the smallest meaningful table width in bits;
	// it sets a freshly constructed table's initial bucket count.
	MinIndexBitWidth() uint
	// MaxIndexBitWidth is the largest meaningful table width in bits; it
	// bounds the integer mixer's folding.
	MaxIndexBitWidth() uint
}

// IntID wraps an unsigned integer identifier of up to 64 bits. The default
// bit-width bounds (min=4, max=64) match the source distribution's default
// template parameters; use NewIntIDWidth to override them for a narrower
// table, e.g. the (4, 32) pairing used throughout §8 of the design notes.
type IntID struct {
	v       uint64
	minBits uint
	maxBits uint
}

// NewIntID returns an integer identifier with the default bit-width bounds
// (minIndexBitWidth=4, maxIndexBitWidth=64).
func NewIntID(v uint64) IntID {
	return NewIntIDWidth(v, 4, 64)
}

// NewIntIDWidth returns an integer identifier with explicit bit-width
// bounds. minBits sets the initial table size when this is the first
// identifier a Table is constructed from; maxBits bounds mixer folding.
func NewIntIDWidth(v uint64, minBits, maxBits uint) IntID {
	return IntID{v: v, minBits: minBits, maxBits: maxBits}
}

// Value returns the wrapped integer.
func (id IntID) Value() uint64 { return id.v }

// Hash implements ID.
func (id IntID) Hash() uint64 { return mixHash(id.v, id.minBits, id.maxBits) }

// Equal implements ID.
func (id IntID) Equal(other ID) bool {
	o, ok := other.(IntID)
	return ok && o.v == id.v
}

// MinIndexBitWidth implements ID.
func (id IntID) MinIndexBitWidth() uint { return id.minBits }

// MaxIndexBitWidth implements ID.
func (id IntID) MaxIndexBitWidth() uint { return id.maxBits }

// NewChronoID returns the chronological-integer identifier used as the key
// type of a ChronoTable: an IntID with the wider minimum bit-width (8, not
// 4) the source distribution's chronological adapter specifies, since a
// ChronoTable is expected to hold more entries over its lifetime than a
// plain integer table sized from a single known key.
func NewChronoID(v uint64) IntID {
	return NewIntIDWidth(v, 8, 64)
}

// AllocMode selects how a StringID owns its backing bytes.
type AllocMode uint8

const (
	// Borrowed means the caller guarantees the backing string outlives
	// the identifier's membership in any Table.
	Borrowed AllocMode = iota
	// Owned means the identifier holds its own copy, made at
	// construction time and released by calling Release.
	Owned
)

// StringID wraps a NUL-terminated byte-string identifier, either borrowing
// the caller's bytes or owning a private copy. A StringID whose backing
// pointer is nil (e.g. after Release) never compares equal to anything,
// including another released StringID — this mirrors the source
// distribution's short-circuit against comparing through a freed pointer.
type StringID struct {
	data *string
	mode AllocMode
}

// NewBorrowedStringID wraps s without copying it. The caller must keep s
// alive for as long as any record carrying this identifier remains in a
// Table.
func NewBorrowedStringID(s *string) StringID {
	return StringID{data: s, mode: Borrowed}
}

// NewOwnedStringID copies s and returns an identifier that owns the copy.
// The returned error is always nil in practice — Go's allocator does not
// expose recoverable allocation failure the way the source distribution's
// manual allocator does — but the signature is kept so the two
// construction paths (owned vs. borrowed) surface the same
// ErrAllocationFailed channel New does, per the source's two-failure-mode
// design (§7 of the design notes).
func NewOwnedStringID(s string) (StringID, error) {
	cp := s
	return StringID{data: &cp, mode: Owned}, nil
}

// Release drops an owned identifier's backing copy, letting the garbage
// collector reclaim it, and poisons the identifier so it no longer compares
// equal to anything. Release on a Borrowed identifier only poisons it; the
// caller's bytes are untouched.
func (id *StringID) Release() {
	id.data = nil
}

// Mode reports whether the identifier owns or borrows its backing bytes.
func (id StringID) Mode() AllocMode { return id.mode }

// String returns the backing bytes, or "" if the identifier has no backing
// (nil data pointer).
func (id StringID) String() string {
	if id.data == nil {
		return ""
	}
	return *id.data
}

// Hash implements ID.
func (id StringID) Hash() uint64 {
	return mixHash(uint64(pearsonHash(id.data)), 8, 32)
}

// Equal implements ID. A nil backing pointer on either side never compares
// equal, even to another nil-backed StringID.
func (id StringID) Equal(other ID) bool {
	o, ok := other.(StringID)
	if !ok || id.data == nil || o.data == nil {
		return false
	}
	return *id.data == *o.data
}

// MinIndexBitWidth implements ID. CHAR_BIT on the canonical platform.
func (id StringID) MinIndexBitWidth() uint { return 8 }

// MaxIndexBitWidth implements ID. sizeof(unsigned) in bits on the
// canonical platform.
func (id StringID) MaxIndexBitWidth() uint { return 32 }
