package service

import (
	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error reasons returned to API clients.
const (
	ReasonValidationFailed  = "VALIDATION_FAILED"
	ReasonMissingCaller     = "MISSING_CALLER"
	ReasonLinkNotFound      = "LINK_NOT_FOUND"
	ReasonCampaignNotFound  = "CAMPAIGN_NOT_FOUND"
	ReasonAgentNotFound     = "AGENT_NOT_FOUND"
	ReasonAlreadyJoined     = "ALREADY_JOINED"
	ReasonCampaignInactive  = "CAMPAIGN_INACTIVE"
	ReasonInvalidStatus     = "INVALID_STATUS"
	ReasonInvalidTransition = "INVALID_TRANSITION"
	ReasonInvalidCampaign   = "INVALID_CAMPAIGN"
	ReasonShortCodeConflict = "SHORT_CODE_CONFLICT"
	ReasonInternal          = "INTERNAL"
)

// toKratosError maps domain errors onto transport errors with stable reasons.
func toKratosError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return validationError(verrs)
	case errors.Is(err, domain.ErrLinkNotFound):
		return errors.NotFound(ReasonLinkNotFound, "tracking link not found")
	case errors.Is(err, domain.ErrCampaignNotFound):
		return errors.NotFound(ReasonCampaignNotFound, "campaign not found")
	case errors.Is(err, domain.ErrAgentNotFound):
		return errors.NotFound(ReasonAgentNotFound, "agent not found")
	case errors.Is(err, domain.ErrAlreadyJoined):
		return errors.Conflict(ReasonAlreadyJoined, "agent already joined this campaign")
	case errors.Is(err, domain.ErrInvalidTransition):
		return errors.Conflict(ReasonInvalidTransition, err.Error())
	case errors.Is(err, domain.ErrShortCodeExists):
		return errors.Conflict(ReasonShortCodeConflict, "could not allocate a short code, retry later")
	case errors.Is(err, domain.ErrCampaignInactive):
		return errors.BadRequest(ReasonCampaignInactive, "campaign is not active")
	case errors.Is(err, domain.ErrInvalidStatus):
		return errors.BadRequest(ReasonInvalidStatus, err.Error())
	case errors.Is(err, domain.ErrInvalidCampaign), errors.Is(err, domain.ErrInvalidURL):
		return errors.BadRequest(ReasonInvalidCampaign, err.Error())
	default:
		return errors.InternalServer(ReasonInternal, "internal server error").WithCause(err)
	}
}

// validationError carries the per field messages in the error metadata.
func validationError(verrs validation.Errors) *errors.Error {
	fields := make(map[string]string, len(verrs))
	for field, err := range verrs {
		fields[field] = err.Error()
	}
	return errors.BadRequest(ReasonValidationFailed, "request validation failed").WithMetadata(fields)
}

func missingCaller(header string) error {
	return errors.Unauthorized(ReasonMissingCaller, header+" header is required")
}
