package problemdetails

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	TypeNotFound        = "not-found"
	TypeInternalError   = "internal-error"
	TypeValidationError = "validation-error"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ProblemDetail struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail"`
	Reason string       `json:"reason,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func NewValidation(errors []FieldError) *ProblemDetail {
	return &ProblemDetail{
		Type:   fmt.Sprintf("https://api.example.com/problems/%s", TypeValidationError),
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Detail: "Request validation failed",
		Errors: errors,
	}
}

// FromReason builds a problem from a status code and a machine readable
// reason such as LINK_NOT_FOUND. Field errors are sorted by field name.
func FromReason(status int, reason, detail string, fields map[string]string) *ProblemDetail {
	problemType := TypeInternalError
	if reason != "" {
		problemType = strings.ReplaceAll(strings.ToLower(reason), "_", "-")
	}
	title := http.StatusText(status)
	if title == "" {
		title = "Error"
	}

	p := New(status, problemType, title, detail)
	p.Reason = reason
	for field, msg := range fields {
		p.Errors = append(p.Errors, FieldError{Field: field, Message: msg})
	}
	sort.Slice(p.Errors, func(i, j int) bool { return p.Errors[i].Field < p.Errors[j].Field })
	return p
}
