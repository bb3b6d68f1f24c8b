/*
Package kv defines the abstraction for the key/value database the
registry keeps its records in, together with an implementation backed
by bbolt (https://github.com/etcd-io/bbolt).
*/
package kv

// Bucket is a named keyspace inside a transaction.
type Bucket interface {
	// Get returns the value stored under the key, or nil if the key
	// does not exist. The returned slice is only valid for the
	// duration of the transaction.
	Get(key []byte) []byte

	// Set stores the value under the key.
	Set(key, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key []byte) error

	// ForEach calls fn for every key/value pair in the bucket in key
	// order. The iteration stops at the first error, which is returned.
	ForEach(fn func(k, v []byte) error) error

	// Scan calls fn for every key matching the prefix in key order.
	// The iteration stops at the first error, which is returned.
	Scan(prefix []byte, fn func(k, v []byte) error) error
}

// ReadableTx is a read-only view of the database.
type ReadableTx interface {
	// GetBucket returns the named bucket, or nil if it does not exist.
	GetBucket(name []byte) Bucket
}

// WritableTx extends the read-only view with writes. All writes made
// through it are applied atomically when the transaction commits and
// discarded when it returns an error.
type WritableTx interface {
	ReadableTx

	// GetBucketOrCreate returns the named bucket, creating it first if
	// it does not exist.
	GetBucketOrCreate(name []byte) (Bucket, error)
}

// DB is a transactional key/value database.
type DB interface {
	// View runs fn in a read-only transaction.
	View(fn func(ReadableTx) error) error

	// Update runs fn in a read-write transaction. The transaction
	// commits iff fn returns nil.
	Update(fn func(WritableTx) error) error

	// Close releases the database. Every call after Close fails.
	Close() error
}
