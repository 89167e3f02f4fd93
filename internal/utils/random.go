package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const rideNumberDigits = 6

// GenerateRideNumber produces a human-readable booking reference like
// RW-20260825-493021. Uniqueness is enforced by the rides collection index.
func GenerateRideNumber() string {
	return fmt.Sprintf("RW-%s-%s", time.Now().UTC().Format("20060102"), randomDigits(rideNumberDigits))
}

func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits)
}
