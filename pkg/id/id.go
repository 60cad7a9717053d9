package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Monotonic entropy keeps ids created in the same millisecond ordered.
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID for a record created now.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID whose timestamp component is t, so a trade logged
// after the fact still sorts by its own creation time.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Only possible for times before the epoch or after year 10889.
		return ulid.Make().String()
	}
	return id.String()
}

// Time extracts the creation time encoded in a ULID. ok is false for ids that
// were not produced by this package (imported records keep their own ids).
func Time(s string) (t time.Time, ok bool) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(id.Time()), true
}
