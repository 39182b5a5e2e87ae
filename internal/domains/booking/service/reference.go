package service

import (
	"fmt"
	"math/rand/v2"
	"parkspot/shared/timezone"
	"time"
)

const referenceRandomBound = 10000

// generateReference builds a human-readable booking reference from an
// instant and a random suffix: "BK" + last six digits of the epoch
// millisecond timestamp + four-digit zero-padded random.
func generateReference(now time.Time, random int) string {
	return fmt.Sprintf("BK%06d%04d", now.UnixMilli()%1000000, random%referenceRandomBound)
}

func newReference() string {
	return generateReference(timezone.Now(), rand.IntN(referenceRandomBound))
}
