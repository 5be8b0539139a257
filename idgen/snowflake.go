// Package idgen implements the Snowflake-style identifier generator of
// §4.6: a 64-bit value composed of a millisecond timestamp, a worker id, a
// datacenter id, and a per-millisecond sequence, produced without any
// coordination beyond a single process-local atomic counter.
package idgen

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Bit layout, low to high: sequence (12 bits) | datacenter id (5 bits) |
// worker id (5 bits) | timestamp-since-Epoch (remaining high bits) — i.e.
// id = (timestamp_ms - epoch) << 22 | worker_id << 17 | datacenter_id << 12 | sequence.
const (
	sequenceBits   = 12
	datacenterBits = 5
	workerBits     = 5

	maxSequence     = -1 ^ (-1 << sequenceBits)
	maxDatacenterID = -1 ^ (-1 << datacenterBits)
	maxWorkerID     = -1 ^ (-1 << workerBits)

	datacenterShift = sequenceBits
	workerShift     = sequenceBits + datacenterBits
	timestampShift  = sequenceBits + datacenterBits + workerBits
)

// Epoch is the custom epoch (ms since Unix epoch) subtracted from the
// current time before shifting it into the high bits, per §4.6. Fixed at
// 2020-01-01T00:00:00Z so generated ids stay well clear of the int64 sign
// bit for the foreseeable operating life of the generator.
const Epoch int64 = 1577836800000

// Snowflake is a single worker/datacenter's identifier generator. The zero
// value is not usable; construct one with New.
type Snowflake struct {
	workerID     int64
	datacenterID int64
	logger       *slog.Logger

	state atomic.Uint64 // packed {lastMillis:52 | sequence:12}
}

// New validates workerID and datacenterID against their bit widths and
// returns a ready Snowflake. logger may be nil; a clock rollback is then
// tolerated silently instead of logged.
func New(workerID, datacenterID int64, logger *slog.Logger) (*Snowflake, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("idgen: worker id %d out of range [0, %d]", workerID, maxWorkerID)
	}
	if datacenterID < 0 || datacenterID > maxDatacenterID {
		return nil, fmt.Errorf("idgen: datacenter id %d out of range [0, %d]", datacenterID, maxDatacenterID)
	}
	return &Snowflake{workerID: workerID, datacenterID: datacenterID, logger: logger}, nil
}

func pack(millis int64, seq int64) uint64 {
	return uint64(millis)<<12 | uint64(seq)
}

func unpack(state uint64) (millis int64, seq int64) {
	return int64(state >> 12), int64(state & maxSequence)
}

// Next produces the next id. It never blocks except to spin through the
// remainder of a millisecond once the 4096-wide sequence space for that
// millisecond is exhausted.
func (s *Snowflake) Next() int64 {
	for {
		now := time.Now().UnixMilli()
		prev := s.state.Load()
		prevMillis, prevSeq := unpack(prev)

		if now < prevMillis {
			if s.logger != nil {
				s.logger.Warn("idgen: clock moved backwards", "previous_ms", prevMillis, "observed_ms", now)
			}
			now = prevMillis
		}

		var seq int64
		if now == prevMillis {
			seq = (prevSeq + 1) & maxSequence
			if seq == 0 {
				// sequence exhausted for this millisecond; spin to the next one
				continue
			}
		}

		next := pack(now, seq)
		if !s.state.CompareAndSwap(prev, next) {
			continue
		}
		return (now-Epoch)<<timestampShift | s.workerID<<workerShift | s.datacenterID<<datacenterShift | seq
	}
}
