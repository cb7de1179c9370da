package helpers

import (
	"crypto/rand"
	"math/big"
)

// RandomNumericString returns n random decimal digits, used for per-user
// rtc identifiers. The first digit may be zero; consumers treat the value
// as an opaque string.
func RandomNumericString(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(10)
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = byte('0' + v.Int64())
	}
	return string(out), nil
}
