package valueobject

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// TargetURL is the destination a campaign promotes. Only absolute
// http and https URLs are accepted.
type TargetURL struct {
	value  string
	parsed *url.URL
}

// NewTargetURL validates rawURL and wraps it.
func NewTargetURL(rawURL string) (TargetURL, error) {
	if err := validation.Validate(rawURL,
		validation.Required.Error("URL is required"),
		is.URL.Error("invalid URL format"),
	); err != nil {
		return TargetURL{}, ErrInvalidURL
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return TargetURL{}, ErrInvalidURL
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return TargetURL{}, ErrInvalidURL
	}

	if parsed.Host == "" {
		return TargetURL{}, ErrInvalidURL
	}

	return TargetURL{
		value:  rawURL,
		parsed: parsed,
	}, nil
}

// String returns the string representation of the TargetURL.
func (t TargetURL) String() string {
	return t.value
}

// Host returns the host portion of the URL.
func (t TargetURL) Host() string {
	if t.parsed == nil {
		return ""
	}
	return t.parsed.Host
}

// IsEmpty returns true if the TargetURL is empty.
func (t TargetURL) IsEmpty() bool {
	return t.value == ""
}
