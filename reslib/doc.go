// Package reslib implements a generic in-memory resource index: a
// hash-indexed associative container mapping caller-supplied identifiers to
// caller-owned resource records.
//
// Records are registered once, looked up many times, and removed in
// arbitrary order, which is the access pattern of a control-system process
// database. The table never rehashes the whole bucket array at once: it
// grows one bucket at a time using linear hashing (see Table.Add and
// splitStep), amortizing growth cost regardless of table size.
//
// Storage is intrusive: a Record embeds its own chain-link field, so the
// table never allocates per entry. A Table is generic over any record type
// that satisfies the Record constraint, and over any identifier type that
// satisfies ID.
//
// reslib is not safe for concurrent use. Callers that share a Table across
// goroutines must serialize access themselves, e.g. with one sync.RWMutex,
// holding its read lock around lookups and its write lock around mutation.
package reslib
