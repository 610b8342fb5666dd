package valueobject

import (
	"crypto/rand"
	"math/big"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultShortCodeLength = 6
	MinShortCodeLength     = 3
	MaxShortCodeLength     = 20
)

// shortCodeAlphabet is the alphabet issued codes are drawn from.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var shortCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ShortCode is a value object representing a tracking link short code.
// It is immutable and validated on creation.
type ShortCode struct {
	value string
}

// NewShortCode creates a new ShortCode from a string, validating the format.
func NewShortCode(code string) (ShortCode, error) {
	if err := validation.Validate(code,
		validation.Required.Error("short code is required"),
		validation.Length(MinShortCodeLength, MaxShortCodeLength).Error("short code must be 3-20 characters"),
		validation.Match(shortCodeRegex).Error("short code must contain only alphanumeric characters, underscores, and hyphens"),
	); err != nil {
		return ShortCode{}, ErrInvalidCode
	}
	return ShortCode{value: code}, nil
}

// GenerateShortCode creates a new random alphanumeric ShortCode of the given length.
func GenerateShortCode(length int) (ShortCode, error) {
	if length <= 0 {
		length = DefaultShortCodeLength
	}

	max := big.NewInt(int64(len(shortCodeAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return ShortCode{}, err
		}
		buf[i] = shortCodeAlphabet[n.Int64()]
	}

	return ShortCode{value: string(buf)}, nil
}

// String returns the string representation of the ShortCode.
func (s ShortCode) String() string {
	return s.value
}

// IsEmpty returns true if the ShortCode is empty.
func (s ShortCode) IsEmpty() bool {
	return s.value == ""
}

// Equals compares two ShortCodes for equality.
func (s ShortCode) Equals(other ShortCode) bool {
	return s.value == other.value
}
