package problemdetails

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromReason(t *testing.T) {
	p := FromReason(http.StatusNotFound, "LINK_NOT_FOUND", "tracking link not found", nil)

	assert.Equal(t, "https://api.example.com/problems/link-not-found", p.Type)
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "LINK_NOT_FOUND", p.Reason)
	assert.Empty(t, p.Errors)
}

func TestFromReason_FieldErrorsAreSorted(t *testing.T) {
	p := FromReason(http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", map[string]string{
		"target_url": "must be a valid URL",
		"name":       "cannot be blank",
	})

	assert.Equal(t, []FieldError{
		{Field: "name", Message: "cannot be blank"},
		{Field: "target_url", Message: "must be a valid URL"},
	}, p.Errors)
}

func TestFromReason_WithoutReason(t *testing.T) {
	p := FromReason(http.StatusInternalServerError, "", "boom", nil)

	assert.Equal(t, "https://api.example.com/problems/internal-error", p.Type)
	assert.Equal(t, "Internal Server Error", p.Title)
}
