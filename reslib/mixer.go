package reslib

// mixHash folds a wide unsigned integer hash down so that masking the
// result to any width in [minIndexBitWidth, maxIndexBitWidth] still depends
// on every input bit. It is the only hash used for integer identifiers, and
// the second stage for the string identifier hash (see pearsonHash).
//
// The loop runs ceil(log2(maxIndexBitWidth/minIndexBitWidth)) times at
// most, repeatedly XOR-folding the upper half of the remaining width into
// the lower half. The result is never masked here: masking to the table's
// current bucket-index width is the table's job, so one mixed value can
// feed a table of any size the caller later grows it to.
//
// If minIndexBitWidth >= maxIndexBitWidth the loop body never runs and v is
// returned unchanged; callers must tolerate bits above maxIndexBitWidth
// being zero in that case.
func mixHash(v uint64, minIndexBitWidth, maxIndexBitWidth uint) uint64 {
	width := maxIndexBitWidth
	for width > minIndexBitWidth {
		width >>= 1
		v ^= v >> width
	}
	return v
}
