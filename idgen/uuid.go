package idgen

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// UUIDGenerator mints ids from a random (version 4) UUID's low 64 bits,
// using github.com/google/uuid as the id source. It needs no
// worker/datacenter coordination, unlike Snowflake, at the cost of the
// birthday-bound collision risk inherent to a 64-bit random id rather than
// a counter.
type UUIDGenerator struct{}

// Next returns the low 8 bytes of a freshly generated UUID as an int64.
func (UUIDGenerator) Next() int64 {
	id := uuid.New()
	return int64(binary.BigEndian.Uint64(id[8:16]))
}
