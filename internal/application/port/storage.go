package port

import "context"

// KeyValueStore is the persistence capability behind every store: one
// serialized value per key, whole-value reads and writes.
type KeyValueStore interface {
	// Read returns the value for key. ok is false when the key is absent.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Write replaces the value for key. Implementations return an error
	// wrapping entity.ErrStorageQuotaExceeded when capacity is exhausted.
	Write(ctx context.Context, key string, value []byte) error
}
