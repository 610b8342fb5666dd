package domain

import (
	"errors"

	"go-promoter/internal/domain/valueobject"
)

var (
	ErrLinkNotFound     = errors.New("tracking link not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrShortCodeExists  = errors.New("short code already exists")
	ErrAlreadyJoined    = errors.New("agent already joined campaign")
	ErrCampaignInactive = errors.New("campaign is not active")

	ErrInvalidCampaign   = errors.New("invalid campaign")
	ErrInvalidStatus     = errors.New("invalid campaign status")
	ErrInvalidTransition = errors.New("invalid campaign status transition")

	// ErrDataIntegrity reports a row that references a missing campaign or agent.
	ErrDataIntegrity = errors.New("data integrity violation")
	// ErrNoTransaction is returned by operations that must run inside UnitOfWork.Do.
	ErrNoTransaction = errors.New("operation requires a transaction")

	// Re-export value object errors for convenience.
	ErrInvalidURL  = valueobject.ErrInvalidURL
	ErrInvalidCode = valueobject.ErrInvalidCode
)
