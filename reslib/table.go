package reslib

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/multierr"
)

// Status is the outcome of Table.Add.
type Status int

const (
	// Inserted means the record was linked into the table.
	Inserted Status = iota
	// Duplicate means an equal identifier was already present; the
	// caller's record is untouched.
	Duplicate
)

func (s Status) String() string {
	if s == Duplicate {
		return "Duplicate"
	}
	return "Inserted"
}

// Table is a hash-indexed bucket array keyed by ID, holding records of
// type T via the Record[T] contract R. It grows by linear hashing: a
// single bucket is split per Add once the table is over its load target,
// never a global rehash (see splitStep).
//
// A Table is not safe for concurrent use; see the package doc comment.
type Table[T any, R Record[T]] struct {
	buckets []*T

	nInUse uint64

	// hashIxMask selects the low k bits of a hash, where 1<<k is the
	// bucket count before the current linear-hashing round began.
	hashIxMask uint64
	// hashIxSplitMask selects k+1 bits: the bucket count this round
	// grows the table to before the next capacity doubling.
	hashIxSplitMask uint64
	// nextSplitIndex is the next bucket scheduled for a split step, in
	// [0, hashIxMask+1].
	nextSplitIndex uint64

	minBits uint
	maxBits uint
}

// New constructs an empty table sized from an identifier's bit-width
// bounds. minIndexBitWidth sets the initial bucket count
// (1 << (minIndexBitWidth+1): one split round past the minimum, per the
// source distribution's lifecycle); maxIndexBitWidth is carried for
// informational parity with the identifier type but does not otherwise
// affect table sizing (the mixer, not the table, uses it).
//
// New returns ErrAllocationFailed if the initial bucket array cannot be
// allocated, or if minIndexBitWidth is zero.
func New[T any, R Record[T]](minIndexBitWidth, maxIndexBitWidth uint) (t *Table[T, R], err error) {
	if minIndexBitWidth == 0 {
		return nil, wrapAlloc("minIndexBitWidth must be >= 1")
	}
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, wrapAlloc(fmt.Sprintf("table init: %v", p))
		}
	}()

	size := uint64(1) << (minIndexBitWidth + 1)
	buckets := make([]*T, size)
	return &Table[T, R]{
		buckets:         buckets,
		hashIxMask:      (uint64(1) << minIndexBitWidth) - 1,
		hashIxSplitMask: size - 1,
		nextSplitIndex:  uint64(1) << minIndexBitWidth,
		minBits:         minIndexBitWidth,
		maxBits:         maxIndexBitWidth,
	}, nil
}

// bucketCount returns B, the table's current logical bucket count.
func (t *Table[T, R]) bucketCount() uint64 {
	return (t.hashIxMask + 1) + t.nextSplitIndex
}

// bucketIndex applies the classical linear-hashing split rule: buckets
// below nextSplitIndex have already been split this round and use the
// wider mask; buckets at or above it still share their pre-split pair and
// use the narrower mask.
func (t *Table[T, R]) bucketIndex(id ID) uint64 {
	h := id.Hash()
	b0 := h & t.hashIxMask
	if b0 >= t.nextSplitIndex {
		return b0
	}
	return h & t.hashIxSplitMask
}

// Add links r into the table. It returns Duplicate, leaving r untouched,
// if an equal identifier is already present. r must not currently be a
// member of any chain.
func (t *Table[T, R]) Add(r *T) Status {
	id := R(r).Ident()
	b := t.bucketIndex(id)

	if chainFind[T, R](t.buckets[b], func(x *T) bool { return R(x).Ident().Equal(id) }) != nil {
		return Duplicate
	}

	if t.nInUse > t.bucketCount() {
		t.splitStep()
		b = t.bucketIndex(id) // the split may have moved this id's bucket
	}

	chainPushFront[T, R](&t.buckets[b], r)
	t.nInUse++
	return Inserted
}

// Lookup returns the record with the given identifier, or nil. It does not
// mutate the table.
func (t *Table[T, R]) Lookup(id ID) *T {
	b := t.bucketIndex(id)
	return chainFind[T, R](t.buckets[b], func(x *T) bool { return R(x).Ident().Equal(id) })
}

// Remove unlinks and returns the record with the given identifier, or nil
// if absent.
func (t *Table[T, R]) Remove(id ID) *T {
	b := t.bucketIndex(id)
	r := chainRemoveMatch[T, R](&t.buckets[b], func(x *T) bool { return R(x).Ident().Equal(id) })
	if r != nil {
		t.nInUse--
	}
	return r
}

// Traverse visits every live record exactly once, in ascending bucket
// order. visit may unlink the current record (from this table, via Remove
// with its own identifier, or from an external structure it also belongs
// to) without corrupting the traversal: the successor is captured before
// visit runs. No insertions may occur during a traversal. Traversal stops
// early if visit returns false.
func (t *Table[T, R]) Traverse(visit func(r *T) bool) {
	for i := range t.buckets {
		stopped := false
		chainForEach[T, R](t.buckets[i], func(r *T) bool {
			if !visit(r) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}

// TraverseConst is Traverse for callers that promise not to mutate the
// table or any record from within visit. Go cannot enforce that promise at
// compile time; the distinction is documentation only, matching the source
// distribution's const/non-const traversal pair.
func (t *Table[T, R]) TraverseConst(visit func(r *T) bool) {
	t.Traverse(visit)
}

// NumEntriesInstalled returns the number of live records.
func (t *Table[T, R]) NumEntriesInstalled() uint64 {
	return t.nInUse
}

// Iterator returns a restartable forward iterator over the table's live
// records. Behavior is undefined if the table is mutated while an
// iterator from it is still in use.
func (t *Table[T, R]) Iterator() *Iterator[T, R] {
	return &Iterator[T, R]{t: t, bucketIdx: -1}
}

// Iterator is a forward, single-pass cursor produced by Table.Iterator.
type Iterator[T any, R Record[T]] struct {
	t         *Table[T, R]
	bucketIdx int
	cur       *T
}

// Next advances the iterator and returns the next record, or (nil, false)
// once every bucket has been exhausted.
func (it *Iterator[T, R]) Next() (*T, bool) {
	for {
		if it.cur != nil {
			r := it.cur
			it.cur = R(r).Next()
			return r, true
		}
		it.bucketIdx++
		if it.bucketIdx >= len(it.t.buckets) {
			return nil, false
		}
		it.cur = it.t.buckets[it.bucketIdx]
	}
}

// splitStep performs one linear-hashing growth step, run from Add when
// nInUse exceeds the current bucket count. It has two phases: a capacity
// doubling of the physical bucket array, run only when the previous round
// of splits has fully completed (nextSplitIndex > hashIxMask), followed
// unconditionally by an incremental rehash of exactly one bucket.
//
// If the capacity doubling's allocation fails, the whole step is skipped:
// load exceeds the soft target but every existing invariant still holds,
// and the next Add retries.
//
// The source distribution describes the doubled array's size as
// "2*(hashIxMask+1)"; taken literally at the instant hashIxMask is read,
// that reallocates the array to its already-current physical size, which
// cannot be right (it would violate hashIxSplitMask == 2*(hashIxMask+1)-1
// immediately after the described assignments). This implementation sizes
// the new array from the *post-assignment* hashIxMask (i.e. from the
// current hashIxSplitMask), which is the only sizing that preserves the
// stated invariant — see DESIGN.md for this as a recorded decision rather
// than an ambiguity left for the reader.
func (t *Table[T, R]) splitStep() {
	if t.nextSplitIndex > t.hashIxMask {
		newMask := t.hashIxSplitMask
		newSize := 2 * (newMask + 1)
		if !t.growBuckets(newSize) {
			return
		}
		t.hashIxMask = newMask
		t.hashIxSplitMask = newSize - 1
		t.nextSplitIndex = 0
	}

	idx := t.nextSplitIndex
	head := t.buckets[idx]
	t.buckets[idx] = nil
	t.nextSplitIndex++

	chainForEach[T, R](head, func(r *T) bool {
		nb := t.bucketIndex(R(r).Ident())
		chainPushFront[T, R](&t.buckets[nb], r)
		return true
	})
}

// growBuckets reallocates the bucket array to newSize, moving the existing
// chain heads across (copying a chain's head pointer transfers the whole
// chain, since it is intrusive). It reports false, leaving the table
// unchanged, if the allocation panics.
func (t *Table[T, R]) growBuckets(newSize uint64) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	newBuckets := make([]*T, newSize)
	copy(newBuckets, t.buckets)
	t.buckets = newBuckets
	return true
}

// Stats summarizes a Table's current shape, the numbers Show prints and
// resmetrics.Collector exports as gauges.
type Stats struct {
	Buckets        int
	Entries        uint64
	MeanChainLen   float64
	StdDevChainLen float64
	MaxChainLen    int
}

// Stats computes the current bucket-occupancy statistics by walking every
// chain. It is O(bucket count + entry count).
func (t *Table[T, R]) Stats() Stats {
	n := int(t.bucketCount())
	var sum, sumSq float64
	max := 0
	for _, head := range t.buckets[:n] {
		l := chainLen[T, R](head)
		sum += float64(l)
		sumSq += float64(l) * float64(l)
		if l > max {
			max = l
		}
	}
	var mean, variance float64
	if n > 0 {
		mean = sum / float64(n)
		variance = sumSq/float64(n) - mean*mean
		if variance < 0 {
			variance = 0
		}
	}
	return Stats{
		Buckets:        n,
		Entries:        t.nInUse,
		MeanChainLen:   mean,
		StdDevChainLen: math.Sqrt(variance),
		MaxChainLen:    max,
	}
}

// Shower is implemented by record types that want Show(level>=3) to print
// per-record diagnostics.
type Shower interface {
	Show(w io.Writer)
}

// Show writes human-readable diagnostics to w: bucket count, record count,
// and per-bucket occupancy mean/stddev/max. At level >= 3 it additionally
// calls Show on every record that implements Shower.
func (t *Table[T, R]) Show(w io.Writer, level int) {
	st := t.Stats()
	fmt.Fprintf(w, "reslib.Table: buckets=%d entries=%d meanChain=%.2f stddevChain=%.2f maxChain=%d\n",
		st.Buckets, st.Entries, st.MeanChainLen, st.StdDevChainLen, st.MaxChainLen)
	if level < 3 {
		return
	}
	for i, head := range t.buckets {
		chainForEach[T, R](head, func(r *T) bool {
			if s, ok := any(r).(Shower); ok {
				fmt.Fprintf(w, "  bucket %d: ", i)
				s.Show(w)
			}
			return true
		})
	}
}

// Verify walks every chain and checks the table's invariants: each
// record's current bucket matches bucketIndex(record.Ident()), and the sum
// of chain lengths matches NumEntriesInstalled. It returns a combined
// error (via go.uber.org/multierr) listing every violation found, or nil
// if the table is consistent. Verify is a debug aid, not part of normal
// operation; callers typically gate it behind a build tag or test-only
// code path.
func (t *Table[T, R]) Verify() error {
	var err error
	var counted uint64
	for i, head := range t.buckets {
		for r := head; r != nil; r = R(r).Next() {
			counted++
			id := R(r).Ident()
			if got := t.bucketIndex(id); got != uint64(i) {
				err = multierr.Append(err, fmt.Errorf("record in bucket %d hashes to bucket %d", i, got))
			}
		}
	}
	if counted != t.nInUse {
		err = multierr.Append(err, fmt.Errorf("nInUse=%d but traversal counted %d", t.nInUse, counted))
	}
	return err
}
