package validation

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoreport/internal/config"
	apierrors "autoreport/internal/errors"
)

func TestParsePageRequest(t *testing.T) {
	rv := NewRequestValidator()

	tests := []struct {
		name      string
		query     string
		want      PageRequest
		wantField string
	}{
		{"defaults", "", PageRequest{Page: 1, PerPage: config.DefaultPageSize}, ""},
		{"explicit", "page=3&per_page=20", PageRequest{Page: 3, PerPage: 20}, ""},
		{"max page size", "per_page=500", PageRequest{Page: 1, PerPage: 500}, ""},
		{"page zero", "page=0", PageRequest{}, "page"},
		{"page size too large", "per_page=501", PageRequest{}, "per_page"},
		{"not a number", "page=two", PageRequest{}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := rv.ParsePageRequest(values)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)
			assert.Contains(t, errorFields(apiErr), tt.wantField)
		})
	}
}

func errorFields(apiErr *apierrors.APIError) []string {
	switch d := apiErr.Details.(type) {
	case apierrors.ValidationError:
		return []string{d.Field}
	case []apierrors.ValidationError:
		fields := make([]string, 0, len(d))
		for _, ve := range d {
			fields = append(fields, ve.Field)
		}
		return fields
	}
	return nil
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, PerPage: 50}.Offset())
	assert.Equal(t, 100, PageRequest{Page: 3, PerPage: 50}.Offset())
}

func TestRequestValidatorMessages(t *testing.T) {
	rv := NewRequestValidator()
	err := rv.Struct(PageRequest{Page: 0, PerPage: 1000})

	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	details, ok := apiErr.Details.([]apierrors.ValidationError)
	require.True(t, ok)
	require.Len(t, details, 2)
	assert.Equal(t, "page must be at least 1", details[0].Message)
	assert.Equal(t, "per_page must be at most 500", details[1].Message)
}
