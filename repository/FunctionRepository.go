package repository

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateQuoteRef creates a human-readable reference like "QT-AB12345"
// printed on exports and reports.
func GenerateQuoteRef() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	prefix := string(letters[rng.Intn(len(letters))]) + string(letters[rng.Intn(len(letters))])
	number := rng.Intn(90000) + 10000

	return fmt.Sprintf("QT-%s%d", prefix, number)
}
