// Package storage defines the durable key/value contract the cart persists
// through, with a BoltDB-backed implementation for real use and an in-memory
// implementation for tests and ephemeral sessions.
//
// Every operation is fallible by contract. Callers that prioritize
// availability over durability (the cart does) are expected to log failures
// and carry on in memory.
package storage

// Store is the durable storage contract consumed by the cart.
type Store interface {
	// Read returns the record for key. The second return reports whether
	// a record exists; a missing record is not an error.
	Read(key string) ([]byte, bool, error)

	// Write stores the record for key, replacing any previous value.
	Write(key string, value []byte) error

	// Erase removes the record for key entirely. Erasing a missing key
	// is a no-op.
	Erase(key string) error

	// Close releases the underlying resources.
	Close() error
}
