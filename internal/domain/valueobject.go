package domain

import (
	"go-promoter/internal/domain/valueobject"
)

// Re-export value object types for convenience.
// This allows consumers to import from domain package directly.
type (
	ShortCode = valueobject.ShortCode
	TargetURL = valueobject.TargetURL
)

// Re-export value object constructors.
var (
	NewShortCode      = valueobject.NewShortCode
	GenerateShortCode = valueobject.GenerateShortCode
	NewTargetURL      = valueobject.NewTargetURL
)

// Re-export value object constants.
const (
	DefaultShortCodeLength = valueobject.DefaultShortCodeLength
	MinShortCodeLength     = valueobject.MinShortCodeLength
	MaxShortCodeLength     = valueobject.MaxShortCodeLength
)
