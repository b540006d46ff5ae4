package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

// HashLength is the number of hex characters in a dataset hash
const HashLength = 16

var hashPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

// GenerateHash derives a dataset hash from a designer name and a timestamp.
// Format: first 16 hex chars of md5("<name>_<unix micros>").
// The timestamp only separates repeated names; it is not a secret.
func GenerateHash(name string, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d", name, now.UnixMicro())))
	return hex.EncodeToString(sum[:])[:HashLength]
}

// IsValidHash reports whether s looks like a dataset hash
func IsValidHash(s string) bool {
	return hashPattern.MatchString(s)
}

// HashGenerator produces candidate dataset hashes
type HashGenerator interface {
	Generate(name string) string
}

// ClockHashGenerator hashes names against a clock
type ClockHashGenerator struct {
	Now func() time.Time
}

// NewClockHashGenerator returns a generator backed by the wall clock
func NewClockHashGenerator() *ClockHashGenerator {
	return &ClockHashGenerator{Now: time.Now}
}

// Generate returns a hash for name at the current clock reading
func (g *ClockHashGenerator) Generate(name string) string {
	now := time.Now
	if g != nil && g.Now != nil {
		now = g.Now
	}
	return GenerateHash(name, now())
}
