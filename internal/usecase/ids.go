package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

const (
	userIDPrefix    = "USER"
	userIDSuffixLen = 7
	base36Alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// IDGenerator produces new user ids.
type IDGenerator func(now time.Time) (string, error)

// NewUserID returns USER + unix millis + 7 random base36 characters, e.g. USER1718000000000K3J9QZ1.
func NewUserID(now time.Time) (string, error) {
	suffix := make([]byte, userIDSuffixLen)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate user id: %w", err)
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}
	return userIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + string(suffix), nil
}
