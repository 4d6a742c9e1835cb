package fakesendmail

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid"
)

// GenID returns the ULID stamped on every log line and audit record
// of one invocation.
func GenID() ulid.ULID {
	seed := time.Now().UnixNano()
	entropy := rand.New(rand.NewSource(seed))
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
