package thumbnail

import (
	"hash/fnv"
	"strconv"
	"time"
)

// HourBucket returns the number of whole hours elapsed since the Unix epoch.
func HourBucket(t time.Time) int64 {
	sec := t.Unix()
	b := sec / 3600
	if sec%3600 < 0 {
		b--
	}
	return b
}

// RotationIndex picks a pool index for key during hour bucket. It is the
// 32-bit FNV-1a hash of the UTF-8 bytes of key + "_" + decimal(bucket),
// modulo size, so a selection is reproducible across processes and restarts.
// size must be positive.
func RotationIndex(key string, bucket int64, size int) int {
	if size <= 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key + "_" + strconv.FormatInt(bucket, 10)))
	return int(h.Sum32() % uint32(size)) //nolint:gosec // size is a small positive pool length
}

// Rotate returns the pool member selected for key at time now, or "" for an
// empty pool.
func Rotate(key string, pool []string, now time.Time) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[RotationIndex(key, HourBucket(now), len(pool))]
}
