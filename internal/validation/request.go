package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"autoreport/internal/config"
	apierrors "autoreport/internal/errors"
)

// PageRequest selects one page of canonical rows
type PageRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=500"`
}

// Offset returns the index of the first row of the page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// RequestValidator validates request structs with struct tags and reports
// failures with JSON field names
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a request validator
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Struct validates s and converts failures to a 400 APIError
func (rv *RequestValidator) Struct(s interface{}) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// ParsePageRequest reads page and per_page from query values, applying
// defaults for absent parameters
func (rv *RequestValidator) ParsePageRequest(values url.Values) (PageRequest, error) {
	req := PageRequest{Page: 1, PerPage: config.DefaultPageSize}

	for _, p := range []struct {
		name   string
		target *int
	}{
		{"page", &req.Page},
		{"per_page", &req.PerPage},
	} {
		raw := strings.TrimSpace(values.Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return PageRequest{}, apierrors.ErrValidation(p.name, fmt.Sprintf("%s must be a valid integer", p.name))
		}
		*p.target = n
	}

	if err := rv.Struct(req); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

func formatFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
