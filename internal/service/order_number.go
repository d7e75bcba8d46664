package service

import (
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
)

const (
	orderNumberDateLayout = "20060102"
	orderNumberSuffixLen  = 13
)

var orderNumberPattern = regexp.MustCompile(`^\d{8}[a-f0-9]{13}$`)

// NewOrderNumber returns the date of now as YYYYMMDD followed by 13 random lowercase hex characters.
func NewOrderNumber(now time.Time) string {
	id := uuid.New()
	encoded := hex.EncodeToString(id[:])

	// The tail of a v4 UUID holds no version or variant bits.
	return now.Format(orderNumberDateLayout) + encoded[len(encoded)-orderNumberSuffixLen:]
}

// IsValidOrderNumber reports whether s has the format produced by NewOrderNumber.
func IsValidOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
